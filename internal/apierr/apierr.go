// Package apierr defines the error taxonomy surfaced to API clients.
// Every failure the auth core produces carries an HTTP status and a
// message; anything else is treated as an internal error and never
// leaks details to the caller.
package apierr

import (
	"errors"
	"net/http"
)

// Error is a client-visible failure with an HTTP status code.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates an Error with an explicit status code.
func New(statusCode int, message string) *Error {
	return &Error{StatusCode: statusCode, Message: message}
}

// NotFound indicates the referenced record does not exist.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// Forbidden indicates the caller is known but not permitted.
func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

// Unauthorized indicates the caller presented no usable credentials.
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// BadRequest indicates a malformed or unprocessable request.
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// Conflict indicates the request collides with existing state.
func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

// Internal indicates an unexpected failure. The message is generic on
// purpose; details belong in logs, not responses.
func Internal() *Error {
	return New(http.StatusInternalServerError, "internal server error")
}

// FromError extracts the Error from err, or wraps err as Internal.
func FromError(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Internal()
}
