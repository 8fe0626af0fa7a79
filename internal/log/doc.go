// Package log builds the application's slog loggers.
//
// Every logger returned here is wrapped in a SecureHandler, which masks
// attributes that may carry credentials. The dashboard server logs request
// headers at debug level, so Cookie, Authorization and similar headers are
// replaced with MaskValue before they reach the output.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, log.Options{Verbose: true})
//	logger.Debug("request", log.HeaderAttr(r.Header))
//	slog.SetDefault(logger)
package log
