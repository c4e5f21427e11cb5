// Package errors defines the coded errors shared by the renderer, the HTTP
// handlers and the CLI.
//
// Every failure that reaches a caller carries a Code so handlers can pick a
// status without string matching:
//
//	err := errors.New(errors.ErrCodeInvalidInput, "matrix has %d cells, want %d", n, want)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // 400
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error category.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidParams Code = "INVALID_PARAMS"

	// ErrCodeInternalInvariant marks a corrupted tracer state. Valid input
	// never produces it.
	ErrCodeInternalInvariant Code = "INTERNAL_INVARIANT"

	ErrCodeEncodeFailed Code = "ENCODE_FAILED"
	ErrCodeRasterFailed Code = "RASTER_FAILED"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
)

// Error is an error with a Code and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the cause so errors.Is/As see through the wrapper.
func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error that records cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix when err is an
// *Error, and err.Error() otherwise.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps err to the status a handler should answer with.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidParams:
		return http.StatusBadRequest
	case ErrCodeEncodeFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
