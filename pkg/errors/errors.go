// Package errors provides the coded errors shared by the value core, the
// analysis runner, the CLI and the HTTP API.
//
// Every failure a caller can act on carries a [Code]. The core packages
// return codes for bad input (an unknown source, a weight vector that does
// not cover the graph), the server turns them into HTTP statuses, and the
// CLI prints the message.
//
// # Error Codes
//
//   - INVALID_*: the request itself is wrong (INVALID_SOURCE for a traversal
//     source or valued node that is not in the graph)
//   - EMPTY_GRAPH, WEIGHT_MISMATCH, TOO_LARGE: the graph cannot be analysed
//     as asked
//   - NOT_FOUND, FILE_NOT_FOUND: a route, URL or file is missing
//   - INTERNAL_ERROR, UNSUPPORTED: failures inside netvalue or its tools
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidSource, "node %q is not in the graph", id)
//	if errors.Is(err, errors.ErrCodeInvalidSource) {
//	    // report the bad node
//	}
//
//	err = errors.Wrap(errors.ErrCodeInvalidFormat, yamlErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Bad requests
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidSource Code = "INVALID_SOURCE"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Graphs that cannot be analysed as asked
	ErrCodeEmptyGraph     Code = "EMPTY_GRAPH"
	ErrCodeWeightMismatch Code = "WEIGHT_MISMATCH"
	ErrCodeTooLarge       Code = "TOO_LARGE"

	// Missing routes, URLs and files
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Failures inside netvalue
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// clientCodes are the codes caused by the caller's input.
var clientCodes = map[Code]bool{
	ErrCodeInvalidInput:   true,
	ErrCodeInvalidSource:  true,
	ErrCodeInvalidFormat:  true,
	ErrCodeInvalidConfig:  true,
	ErrCodeEmptyGraph:     true,
	ErrCodeWeightMismatch: true,
	ErrCodeTooLarge:       true,
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

// Unwrap returns the cause so errors.Is and errors.As see through *Error.
func (e *Error) Unwrap() error { return e.Cause }

// New creates an error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// As returns the outermost *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Is reports whether the outermost *Error in err's chain has code.
// Inner codes are ignored: Wrap(INTERNAL_ERROR, New(INVALID_INPUT, ...))
// is an internal error.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of err, or "" when err carries none.
func GetCode(err error) Code {
	if e, ok := As(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of a coded error without the code
// prefix, or err.Error() for any other error.
func UserMessage(err error) string {
	if e, ok := As(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsClientError reports whether the error was caused by bad input rather than
// by a failure inside netvalue. The HTTP server maps these to 4xx responses.
func IsClientError(err error) bool {
	return clientCodes[GetCode(err)]
}
