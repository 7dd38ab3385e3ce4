/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

// Package errors provides structured error types for the failure
// taxonomy of a telemetry pull: connection, authentication,
// configuration, parse, and timeout failures.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeConnection,
//	    "failed to reach device",
//	    dialErr,
//	    map[string]any{
//	        "host": hostname,
//	        "port": port,
//	    },
//	)
package errors
