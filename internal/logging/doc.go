// Package logging provides structured logging for the Roku remote toolkit.
//
// This package wraps zap logger with convenience functions for the common
// logging patterns used by the HTTP server and the CLI. It provides both
// general logging functions and specialized functions for request and
// discovery logging.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (outbound ECP requests, discovery records)
//   - Info: Normal operations (API requests, server lifecycle)
//   - Warn: Non-fatal issues (listener errors, unreachable devices)
//   - Error: Fatal issues (startup failures, critical errors)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Device discovered",
//	    zap.String("address", "192.168.1.100"),
//	    zap.String("name", "Living Room Roku"),
//	)
//
// # Configuration
//
// Initialize logging at server startup:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// CLI commands use InitializeFromEnv, which is silent unless the
// ROKUREMOTE_LOG_LEVEL environment variable is set.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
