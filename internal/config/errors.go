package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrNoTarget is returned when no thread URL or list file is given.
	ErrNoTarget = errors.New("no thread specified: provide a thread URL or use --list")

	// ErrNoKeywords is returned when neither --keywords nor --preset is given.
	ErrNoKeywords = errors.New("no keywords specified: use --keywords or --preset")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidFallbackDelay is returned when the fallback delay is negative.
	ErrInvalidFallbackDelay = errors.New("invalid fallback delay: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrUnknownPreset is returned when a preset is not defined.
	ErrUnknownPreset = errors.New("unknown keyword preset")
)
