package config

import (
	"fmt"
	"maps"
	"net"
	"slices"
	"strings"
)

// HostConfig holds request settings for one forum host.
type HostConfig struct {
	// UserAgent overrides the default client identity.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Cookie is sent with every request to the host.
	// Format: "name=value" or "name1=value1; name2=value2"
	Cookie string `yaml:"cookie,omitempty"`

	// Headers are extra HTTP headers sent to the host.
	Headers map[string]string `yaml:"headers,omitempty"`
}

// File represents the structure of the configuration file.
type File struct {
	// Defaults apply to every host unless overridden in Hosts.
	Defaults HostConfig `yaml:"defaults,omitempty"`

	// Hosts maps a host name or a parent domain (e.g. "5ch.net") to its
	// settings.
	Hosts map[string]HostConfig `yaml:"hosts,omitempty"`

	// Presets maps a name to a list of keyword specifications.
	Presets map[string][]string `yaml:"presets,omitempty"`
}

// GetHostConfig returns the settings for host merged over Defaults. The
// most specific entry wins: "egg.5ch.net" is looked up before "5ch.net".
// A port in host is ignored.
func (cf *File) GetHostConfig(host string) HostConfig {
	result := cf.Defaults
	result.Headers = maps.Clone(cf.Defaults.Headers)

	hc, ok := cf.lookupHost(host)
	if !ok {
		return result
	}

	if hc.UserAgent != "" {
		result.UserAgent = hc.UserAgent
	}
	if hc.Cookie != "" {
		result.Cookie = hc.Cookie
	}
	if len(hc.Headers) > 0 {
		if result.Headers == nil {
			result.Headers = make(map[string]string, len(hc.Headers))
		}
		maps.Copy(result.Headers, hc.Headers)
	}
	return result
}

func (cf *File) lookupHost(host string) (HostConfig, bool) {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(host)

	for host != "" {
		if hc, ok := cf.Hosts[host]; ok {
			return hc, true
		}
		_, parent, found := strings.Cut(host, ".")
		if !found {
			break
		}
		host = parent
	}
	return HostConfig{}, false
}

// Preset returns the keyword specifications stored under name.
func (cf *File) Preset(name string) ([]string, error) {
	specs, ok := cf.Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownPreset, name, strings.Join(cf.PresetNames(), ", "))
	}
	return specs, nil
}

// PresetNames returns the defined preset names in sorted order.
func (cf *File) PresetNames() []string {
	return slices.Sorted(maps.Keys(cf.Presets))
}
