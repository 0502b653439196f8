// Package errors provides structured error types for trustpane.
//
// Every fault that leaves the layout core carries a machine-readable [Code]
// so the shell can decide what to do with it without string matching:
//   - CAPACITY_EXCEEDED: the canvas registry is full
//   - NOT_FOUND: an internally generated canvas id is missing (invariant violation)
//   - DEGENERATE_GEOMETRY: a computed rectangle has non-positive width or height
//   - BACKEND_FAILURE: the graphics surface rejected a query or draw call
//   - TRUST_VIOLATION: a requested trust level exceeds the status region's
//
// A resize that is refused by the minimum-content-height policy is not an
// error and never produces one of these.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeCapacityExceeded, "registry full (%d canvases)", n)
//	if errors.Is(err, errors.ErrCodeCapacityExceeded) {
//	    // Handle a full registry
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeBackendFailure, origErr, "fill %v", rect)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Registry errors
	ErrCodeCapacityExceeded Code = "CAPACITY_EXCEEDED"
	ErrCodeNotFound         Code = "NOT_FOUND"

	// Geometry and policy errors
	ErrCodeDegenerateGeometry Code = "DEGENERATE_GEOMETRY"
	ErrCodeTrustViolation     Code = "TRUST_VIOLATION"

	// Collaborator errors
	ErrCodeBackendFailure Code = "BACKEND_FAILURE"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
// It unwraps the error chain and reports the outermost *Error's code.
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

// Fatal reports whether err signals a broken invariant that the calling
// layout cannot recover from. NOT_FOUND and INTERNAL_ERROR are fatal; the
// rest describe conditions a caller may act on.
func Fatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeNotFound, ErrCodeInternal:
		return true
	}
	return false
}
