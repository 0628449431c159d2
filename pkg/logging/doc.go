// Package logging provides structured logging utilities for sitestack.
//
// # Overview
//
// This package wraps the standard library slog package with project defaults
// for consistent logging across commands. It supports environment-based log
// level configuration, module/version context injection, and source location
// tracking for debug logs.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Potentially problematic situations
//   - ERROR: Failures requiring attention
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("sitestack", version)
//	    slog.Info("synthesizing", "domain", siteDomain)
//	}
//
// The LOG_LEVEL environment variable controls verbosity when no explicit
// level is given:
//
//	LOG_LEVEL=debug sitestack plan --domain example.com
//
// All logs are written to stderr in JSON format so stdout stays free for
// synthesized output and plans.
package logging
