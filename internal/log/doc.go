// Package log provides slog loggers that mask credentials before they reach
// the output.
//
// Forum requests may carry login cookies, session ids in query strings
// (sid=...) and custom authorization headers taken from the configuration
// file. SecureHandler wraps any slog.Handler and replaces those values with
// MaskValue, even at debug level.
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//	logger.Debug("request", "url", "https://egg.5ch.net/x?sid=abc") // sid=***REDACTED***
package log
