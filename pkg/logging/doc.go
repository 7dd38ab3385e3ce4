/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

// Package logging provides structured logging for the collector pipeline.
//
// # Overview
//
// This package wraps the standard library slog package with defaults and
// conventions shared by every component: JSON logs to stderr (the data
// channel on stdout stays clean), environment-based log level
// configuration, module/version context injection, and source location
// tracking for debug logs.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("lumen", version)
//
//	    slog.Info("pull started", "host", host)
//	    slog.Debug("detailed state", "filter", filter)
//	    slog.Error("pull failed", "error", err)
//	}
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("lumen", version, "warn")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity when no
// explicit level is given. If LOG_LEVEL is not set, defaults to INFO.
//
// # Output Format
//
// All logs are written to stderr in JSON format. The monitoring platform
// reads metric data from stdout only, so diagnostics never corrupt the
// data channel.
package logging
