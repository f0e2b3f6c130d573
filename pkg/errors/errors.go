// Package errors provides structured error types for the family tree.
//
// The layout engine itself never fails for well-typed input; errors are
// concentrated in the data-access and transport layers. This package gives
// those layers one vocabulary so that the HTTP API, the CLI and the stores
// agree on what went wrong:
//
//   - INVALID_INPUT: a request or record failed validation
//   - NOT_FOUND: the addressed person or relationship does not exist
//   - CONSTRAINT_VIOLATION: the store rejected a write (e.g. unknown endpoint)
//   - STORE_UNAVAILABLE: the store could not be reached
//   - INTERNAL_ERROR: anything unexpected
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNotFound, "person %d not found", id)
//	if errors.Is(err, errors.ErrCodeNotFound) {
//	    // 404
//	}
//
//	err := errors.Wrap(errors.ErrCodeStoreUnavailable, origErr, "list people")
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	ErrCodeInvalidInput        Code = "INVALID_INPUT"
	ErrCodeInvalidFormat       Code = "INVALID_FORMAT"
	ErrCodeNotFound            Code = "NOT_FOUND"
	ErrCodeConstraintViolation Code = "CONSTRAINT_VIOLATION"
	ErrCodeStoreUnavailable    Code = "STORE_UNAVAILABLE"
	ErrCodeInternal            Code = "INTERNAL_ERROR"
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

// HTTPStatus maps an error to the status code the API responds with.
// Errors without a code are reported as 500.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeConstraintViolation:
		return http.StatusConflict
	case ErrCodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
