// Package domainerrors defines the error codes services return and the single
// translation point from those codes to HTTP statuses. Handlers never invent
// status codes; they pass domain errors to the shared writer.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error for transport translation.
type Code string

const (
	// CodeBadRequest covers malformed or out-of-range caller input,
	// including invalid coordinates.
	CodeBadRequest Code = "bad_request"
	// CodeUnprocessable covers input that is well-formed but unusable,
	// e.g. a location name that normalizes to nothing.
	CodeUnprocessable Code = "unprocessable"
	// CodeNotFound covers missing entities on read paths.
	CodeNotFound Code = "not_found"
	// CodeUnavailable covers store or downstream collaborator failures.
	CodeUnavailable Code = "unavailable"
	// CodeInternal covers everything we did not anticipate.
	CodeInternal Code = "internal"
)

// Error carries a code and a caller-safe message. The wrapped cause, when
// present, is for logs only and never serialized.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a domain error with no underlying cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a cause so logs keep the original failure.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ToHTTPStatus maps a code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnprocessable:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
