// Package logging provides structured logging for can-tracetool.
//
// This package wraps a zap logger with convenience functions for the events
// a trace run produces. Logging is silent unless a level is requested, so
// the rendered CLI output stays clean by default.
//
// # Log Levels
//
//   - Debug: per-line detail (rejected lines, decoded frames with hex dumps)
//   - Info: file loaded, classification tallies
//   - Warn: non-fatal issues (config fallbacks)
//   - Error: fatal issues (unreadable files)
//
// # Configuration
//
// The level comes from, in order: the --log-level flag, the log_level key of
// the config file, the CANTRACE_LOG_LEVEL environment variable:
//
//	if err := logging.Initialize(level); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// Log lines go to stderr so stdout can be piped (e.g. frames --format json).
//
// # Thread Safety
//
// All logging functions are safe for concurrent use.
package logging
