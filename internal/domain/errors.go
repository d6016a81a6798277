package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error that crosses the service boundary wraps exactly one
// of these, and the HTTP layer maps each kind to a status code.
var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned when input is missing, malformed, or out of range.
	ErrValidation = errors.New("validation error")

	// ErrConflict is returned when a write would violate a uniqueness or
	// referential constraint.
	ErrConflict = errors.New("conflict")

	// ErrForbidden is returned when the acting user may not perform the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthorized is returned when credentials or identity tokens are invalid.
	ErrUnauthorized = errors.New("unauthorized")
)

// Error pairs an error kind with a message that is safe to show to API clients.
// errors.Is(err, domain.ErrConflict) matches any *Error whose Kind is ErrConflict.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Kind.Error() + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Participation conflicts. Both are Conflict kinds, so generic conflict
// handling still applies, but callers can match them individually.
var (
	ErrCapacityExceeded = &Error{Kind: ErrConflict, Message: "trip is full"}
	ErrAlreadyEnrolled  = &Error{Kind: ErrConflict, Message: "student already participates in this trip"}
)

// NotFoundError returns a NotFound error carrying msg.
func NotFoundError(msg string) error { return &Error{Kind: ErrNotFound, Message: msg} }

// ValidationError returns a validation error with a formatted message.
func ValidationError(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// ConflictError returns a Conflict error carrying msg.
func ConflictError(msg string) error { return &Error{Kind: ErrConflict, Message: msg} }

// ForbiddenError returns a Forbidden error carrying msg.
func ForbiddenError(msg string) error { return &Error{Kind: ErrForbidden, Message: msg} }

// UnauthorizedError returns an Unauthorized error carrying msg.
func UnauthorizedError(msg string) error { return &Error{Kind: ErrUnauthorized, Message: msg} }

// Message extracts the client-facing message from err. When err carries no
// *Error, fallback is returned so raw driver text never leaks to clients.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return fallback
}
