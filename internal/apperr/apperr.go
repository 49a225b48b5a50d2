// Package apperr defines the error kinds shared by the portal's handlers and services.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel kinds. Match with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")
	ErrStore      = errors.New("store error")
)

// Error carries a kind, a user-facing message and an optional cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool { return target == e.Kind }

// Validation returns a bad-input error with the given message.
func Validation(message string) error {
	return &Error{Kind: ErrValidation, Message: message}
}

// Validationf is Validation with formatting.
func Validationf(format string, args ...any) error {
	return Validation(fmt.Sprintf(format, args...))
}

// Forbidden is returned by the access guard and the host filter.
func Forbidden() error {
	return &Error{Kind: ErrForbidden, Message: "Forbidden"}
}

// NotFound returns an absent-record error.
func NotFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

// Store wraps a remote database or blob-store failure.
func Store(message string, err error) error {
	return &Error{Kind: ErrStore, Message: message, Err: err}
}

// Status maps an error to the HTTP status code used when it reaches a client.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
