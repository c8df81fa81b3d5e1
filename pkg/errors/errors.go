// Package errors provides coded errors for the CLI and HTTP surfaces.
//
// The layout core never returns errors; it reports through diagnostics.
// Errors arise only at the edges: decoding input, reading files, talking to
// caches and stores, and validating request options. Those edges wrap
// failures in an [*Error] carrying a machine-readable [Code].
//
// # Error Codes
//
//   - INVALID_*: request or option validation failures
//   - PARSE_FAILED, NO_GRAPH: input could not be decoded into a graph
//   - NOT_FOUND, FILE_NOT_FOUND: missing resources
//   - UNAVAILABLE, TIMEOUT: backend problems
//   - INTERNAL_ERROR: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // Handle validation error
//	}
//
//	err := errors.Wrap(errors.ErrCodeParseFailed, origErr, "decode %s", path)
//	status := errors.HTTPStatus(err)
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
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidTheme  Code = "INVALID_THEME"
	ErrCodeInvalidEngine Code = "INVALID_ENGINE"
	ErrCodeInvalidSize   Code = "INVALID_SIZE"
	ErrCodeInputTooLarge Code = "INPUT_TOO_LARGE"

	// Decoding errors
	ErrCodeParseFailed Code = "PARSE_FAILED"
	ErrCodeNoGraph     Code = "NO_GRAPH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Backend errors
	ErrCodeUnavailable Code = "UNAVAILABLE"
	ErrCodeTimeout     Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error carries a [Code] alongside a message meant for people. Cause, when
// set, is reachable through errors.Unwrap.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause == nil {
		return msg
	}
	return msg + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns a coded error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns a coded error whose cause is err.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// find returns the outermost *Error in err's chain.
func find(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost coded error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := find(err)
	return ok && e.Code == code
}

// GetCode returns the code of the outermost coded error, or "".
func GetCode(err error) Code {
	if e, ok := find(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage strips the code prefix and cause from coded errors. Other
// errors are returned verbatim.
func UserMessage(err error) string {
	if e, ok := find(err); ok {
		return e.Message
	}
	return err.Error()
}

var statusByCode = map[Code]int{
	ErrCodeInvalidInput:  http.StatusBadRequest,
	ErrCodeInvalidFormat: http.StatusBadRequest,
	ErrCodeInvalidTheme:  http.StatusBadRequest,
	ErrCodeInvalidEngine: http.StatusBadRequest,
	ErrCodeInvalidSize:   http.StatusBadRequest,
	ErrCodeInputTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeParseFailed:   http.StatusUnprocessableEntity,
	ErrCodeNoGraph:       http.StatusUnprocessableEntity,
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeFileNotFound:  http.StatusNotFound,
	ErrCodeUnavailable:   http.StatusServiceUnavailable,
	ErrCodeTimeout:       http.StatusGatewayTimeout,
	ErrCodeUnsupported:   http.StatusNotImplemented,
	ErrCodeInternal:      http.StatusInternalServerError,
}

// HTTPStatus maps an error to an HTTP status code. Uncoded errors map to 500.
func HTTPStatus(err error) int {
	if status, ok := statusByCode[GetCode(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}
