/*
Copyright © 2026 Lumen Labs
SPDX-License-Identifier: Apache-2.0
*/

package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode classifies a failure for programmatic handling and for the
// exit-code decision in the CLI.
type ErrorCode string

const (
	// ErrCodeConnection indicates the device transport is unreachable.
	ErrCodeConnection ErrorCode = "CONNECTION"
	// ErrCodeAuthentication indicates the device rejected the credentials.
	ErrCodeAuthentication ErrorCode = "AUTHENTICATION"
	// ErrCodeConfiguration indicates a missing or invalid filter/extraction
	// rule, detected before any network call.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION"
	// ErrCodeParse indicates a malformed protocol response.
	ErrCodeParse ErrorCode = "PARSE"
	// ErrCodeTimeout indicates an operation exceeded its time limit.
	// Treated identically to any other transport failure.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// StructuredError carries an error code for programmatic handling, a
// human-readable message, the underlying cause, and optional context
// for diagnostics.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// New creates a new StructuredError with the given code and message.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new StructuredError with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with a code and message.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithContext wraps an error with additional context information.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// CodeOf returns the error code of err if it is (or wraps) a
// StructuredError, or the empty code otherwise.
func CodeOf(err error) ErrorCode {
	var se *StructuredError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsConnection reports whether err is a transport failure.
func IsConnection(err error) bool {
	return CodeOf(err) == ErrCodeConnection
}

// IsAuthentication reports whether err is a credential rejection.
func IsAuthentication(err error) bool {
	return CodeOf(err) == ErrCodeAuthentication
}

// IsConfiguration reports whether err is a configuration failure.
func IsConfiguration(err error) bool {
	return CodeOf(err) == ErrCodeConfiguration
}

// IsParse reports whether err is a malformed-response failure.
func IsParse(err error) bool {
	return CodeOf(err) == ErrCodeParse
}
