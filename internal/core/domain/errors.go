package domain

import (
	"errors"
	"fmt"
)

var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("access forbidden")

	// ErrInvalidQuery marks a malformed filter/sort/page specification.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidInput marks a create/update payload that breaks an entity invariant.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidCapacity is a data-integrity failure: a stored capacity that is
	// not a finite, non-negative number.
	ErrInvalidCapacity = errors.New("invalid stored capacity")
)

// ValidationError names the offending field. It unwraps to ErrInvalidQuery or
// ErrInvalidInput so callers can branch with errors.Is.
type ValidationError struct {
	Field  string
	Reason string
	kind   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.kind
}

// QueryError builds a ValidationError for a list specification.
func QueryError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, kind: ErrInvalidQuery}
}

// InputError builds a ValidationError for an entity payload.
func InputError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, kind: ErrInvalidInput}
}

// ErrUpstream marks a failure of an external data source.
var ErrUpstream = errors.New("upstream source unavailable")
