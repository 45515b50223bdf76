// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a unique constraint violation (e.g. name taken).
	ErrConflict = errors.New("already exists")

	// ErrValidation indicates malformed or missing input fields.
	ErrValidation = errors.New("validation failed")
)

// NotFound wraps ErrNotFound with the entity that was looked up.
func NotFound(entity string) error {
	return fmt.Errorf("%s: %w", entity, ErrNotFound)
}

// Conflict wraps ErrConflict with the entity that collided.
func Conflict(entity string) error {
	return fmt.Errorf("%s: %w", entity, ErrConflict)
}

// Validation wraps ErrValidation with a formatted reason.
func Validation(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}
