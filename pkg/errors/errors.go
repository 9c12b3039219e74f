// Package errors provides structured error types for the xdot viewer.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI, TUI and HTTP surfaces
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes separate failure classes: input problems (INVALID_DOT), layout
// collaborator problems (LAYOUT_FAILED, MISSING_BOUNDS, UNRESOLVED_NODE)
// and infrastructure problems (CACHE_ERROR, INTERNAL_ERROR). Conditions
// the viewer tolerates, such as unknown drawing opcodes or color names,
// are not errors at all; they are logged and rendering continues.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingBounds, "layout has no bounding box")
//	if errors.Is(err, errors.ErrCodeMissingBounds) {
//	    // Keep the previous scene, report to the user
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeLayoutFailed, origErr, "dot layout of %s", name)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeInvalidDot Code = "INVALID_DOT"

	// Layout errors
	ErrCodeLayoutFailed   Code = "LAYOUT_FAILED"
	ErrCodeMissingBounds  Code = "MISSING_BOUNDS"
	ErrCodeUnresolvedNode Code = "UNRESOLVED_NODE"

	// Infrastructure errors
	ErrCodeCache    Code = "CACHE_ERROR"
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
