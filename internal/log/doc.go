// Package log builds the slog loggers used by cyriscan.
//
// Every logger returned by this package wraps its output handler in a
// RedactingHandler. Crawls may carry user supplied headers (cookies,
// authorization) from the config file, and seed URLs sometimes embed
// access tokens in their query string. Both are masked before a record
// reaches the output:
//
//   - attributes whose key names a credential are replaced entirely
//   - attributes whose value looks like a bearer/basic/JWT credential are replaced
//   - URL valued attributes keep scheme, host and path but mask sensitive
//     query parameters
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//	logger.Info("visiting", "url", "https://host/cyri?token=abc") // token=***REDACTED***
package log
