package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "threadodds"

	// DefaultTimeout bounds each HTTP request.
	DefaultTimeout = 30 * time.Second

	// DefaultFallbackDelay is the courtesy wait before fetching a rendered
	// page from a host that was just asked for its dat file.
	DefaultFallbackDelay = 1 * time.Second

	// DefaultBatchSize processes threads one at a time.
	DefaultBatchSize = 1

	// DefaultPayoutPercent is the share of the pool paid back, in percent.
	DefaultPayoutPercent = 80.0

	// DefaultUserAgent is the Monazilla identity expected by dat servers.
	DefaultUserAgent = "Monazilla/1.00 (threadodds/1.0)"

	// DefaultMaxBodySize limits the response body size read per request.
	DefaultMaxBodySize = 10 * 1024 * 1024 // 10MB
)

// Config holds all options of an analysis run.
type Config struct {
	// Targets are thread lines in the form "URL [start|start-end]".
	Targets []string

	// Keywords are raw keyword specifications, one group each.
	Keywords []string

	// Preset names a keyword list from the configuration file.
	Preset string

	// PayoutPercent is the payout rate in percent.
	PayoutPercent float64

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// FallbackDelay is the courtesy wait before a fallback request.
	FallbackDelay time.Duration

	// UserAgent is the default client identity.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes.
	MaxBodySize int64

	// BatchSize is the number of threads fetched concurrently.
	BatchSize int

	// Verbose enables debug logging and detailed text output.
	Verbose bool

	// ConfigFilePath is an explicit configuration file. When empty the
	// file is searched for with FindConfigFile.
	ConfigFilePath string

	// File holds the loaded configuration file, if any.
	File *File

	// JSONReport selects JSON output.
	JSONReport bool

	// MarkdownReport selects Markdown output.
	MarkdownReport bool

	// ReportFile is written instead of stdout when set.
	ReportFile string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		PayoutPercent: DefaultPayoutPercent,
		Timeout:       DefaultTimeout,
		FallbackDelay: DefaultFallbackDelay,
		UserAgent:     DefaultUserAgent,
		MaxBodySize:   DefaultMaxBodySize,
		BatchSize:     DefaultBatchSize,
	}
}

// PayoutRate returns the payout rate as a fraction.
func (c *Config) PayoutRate() float64 {
	return c.PayoutPercent / 100
}

// XDGConfigDir returns the XDG config directory for threadodds.
// On Linux: ~/.config/threadodds
// On macOS: ~/Library/Application Support/threadodds
// On Windows: %APPDATA%\threadodds
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
// Keyword count and payout range are checked by the analyzer.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}
	if len(c.Keywords) == 0 && c.Preset == "" {
		return ErrNoKeywords
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.FallbackDelay < 0 {
		return ErrInvalidFallbackDelay
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	return nil
}
