// Package errors provides structured error types for the ganttline application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and library callers
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes separate the two user-facing failure families from
// everything else:
//   - VALIDATION_ERROR / PARSE_ERROR: structural problems in the plan
//     (duplicates, bad references, cycles, malformed schema)
//   - SCHEDULING_ERROR: temporal problems (non-positive durations,
//     unresolvable predecessors, precedence violations)
//   - RENDER_ERROR, FILE_NOT_FOUND, INTERNAL_ERROR: tool-side failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeValidation, "duplicate id %q", id)
//	if errors.Is(err, errors.ErrCodeValidation) {
//	    // the plan is wrong, not the tool
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeParse, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Plan structure errors (the input is wrong)
	ErrCodeValidation Code = "VALIDATION_ERROR"
	ErrCodeParse      Code = "PARSE_ERROR"

	// Temporal errors (the schedule cannot be computed)
	ErrCodeScheduling Code = "SCHEDULING_ERROR"

	// Tool-side errors
	ErrCodeRender       Code = "RENDER_ERROR"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
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

// IsPlanError reports whether the error is the plan author's fault:
// a validation, parse, or scheduling failure. Callers use this to pick
// the "your plan is wrong" exit path instead of "the tool broke".
func IsPlanError(err error) bool {
	switch GetCode(err) {
	case ErrCodeValidation, ErrCodeParse, ErrCodeScheduling:
		return true
	}
	return false
}
