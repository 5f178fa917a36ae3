package thread

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ErrInvalidURL is returned when a reference matches neither recognized shape.
var ErrInvalidURL = errors.New("invalid thread URL")

const (
	// ProxyHost is the smartphone proxy host whose paths carry the real server name.
	ProxyHost = "itest.5ch.net"

	// CanonicalDomain is appended to the server name taken from a proxy path.
	CanonicalDomain = "5ch.net"
)

var (
	directPath = regexp.MustCompile(`^/test/read\.cgi/([^/]+)/(\d+)(?:/|$)`)
	proxyPath  = regexp.MustCompile(`^/([^/]+)/test/read\.cgi/([^/]+)/(\d+)(?:/|$)`)
)

// Locator identifies a single thread on a forum server.
// It is a value object: construct it with Parse and do not modify it.
type Locator struct {
	// Reference is the string the locator was parsed from.
	// The rendered-page fallback is fetched from this address.
	Reference string

	// Scheme is the URL scheme of the reference (http or https).
	Scheme string

	// Host is the origin server, after proxy rewriting.
	Host string

	// Board is the board (category) identifier.
	Board string

	// ThreadID is the numeric thread key.
	ThreadID string
}

// Parse resolves a thread reference into a Locator.
func Parse(reference string) (Locator, error) {
	ref := strings.TrimSpace(reference)
	if ref == "" {
		return Locator{}, fmt.Errorf("%w: empty reference", ErrInvalidURL)
	}

	u, err := url.Parse(ref)
	if err != nil {
		return Locator{}, fmt.Errorf("%w: %s: %v", ErrInvalidURL, ref, err)
	}
	if u.Host == "" {
		return Locator{}, fmt.Errorf("%w: %s: missing host", ErrInvalidURL, ref)
	}

	scheme := u.Scheme
	if scheme == "" {
		scheme = "https"
	}

	if strings.EqualFold(u.Host, ProxyHost) {
		if m := proxyPath.FindStringSubmatch(u.Path); m != nil {
			return Locator{
				Reference: ref,
				Scheme:    scheme,
				Host:      m[1] + "." + CanonicalDomain,
				Board:     m[2],
				ThreadID:  m[3],
			}, nil
		}
	}

	if m := directPath.FindStringSubmatch(u.Path); m != nil {
		return Locator{
			Reference: ref,
			Scheme:    scheme,
			Host:      u.Host,
			Board:     m[1],
			ThreadID:  m[2],
		}, nil
	}

	return Locator{}, fmt.Errorf("%w: %s", ErrInvalidURL, ref)
}

// BaseAddress returns scheme://host of the origin server.
func (l Locator) BaseAddress() string {
	return l.Scheme + "://" + l.Host
}

// DatURL returns the address of the thread's dat file.
func (l Locator) DatURL() string {
	return fmt.Sprintf("%s/%s/dat/%s.dat", l.BaseAddress(), l.Board, l.ThreadID)
}

// String returns the canonical read.cgi address of the thread.
func (l Locator) String() string {
	return fmt.Sprintf("%s/test/read.cgi/%s/%s/", l.BaseAddress(), l.Board, l.ThreadID)
}
