// Package errors provides structured error types for strokeset.
//
// Every failure that aborts a run carries a machine-readable [Code] so the
// CLI can tell configuration problems apart from an unreachable data source
// or a malformed input document.
//
// # Error Codes
//
//   - CONFIG: required configuration (e.g. a connection string) is absent or invalid
//   - CONNECTION: the sample source could not be reached
//   - INVALID_INPUT / INVALID_FORMAT: the sample data itself is unusable
//   - FILE_NOT_FOUND / IO: filesystem failures while reading or writing
//   - INTERNAL: anything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeConfig, "%s is not set", "MONGODB_URI")
//	if errors.Is(err, errors.ErrCodeConfig) {
//	    // Handle configuration error
//	}
//
//	err := errors.Wrap(errors.ErrCodeConnection, origErr, "ping %s", host)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	ErrCodeConfig        Code = "CONFIG"
	ErrCodeConnection    Code = "CONNECTION"
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"
	ErrCodeIO            Code = "IO"
	ErrCodeInternal      Code = "INTERNAL"
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
// For *Error types, returns the message (and cause) without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// Fatal reports whether err belongs to the categories that must stop a run
// before any output is produced: missing configuration or an unreachable
// sample source.
func Fatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeConfig, ErrCodeConnection:
		return true
	}
	return false
}
