package services

import (
	"errors"
	"fmt"

	"bookworm/internal/auth"
)

var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidToken       = auth.ErrInvalidToken
	ErrUnknownUser        = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrItemNotFound       = errors.New("item not found")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

// ValidationError reports malformed input. It is always returned before any mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason) }

func invalid(field, reason string) error { return &ValidationError{Field: field, Reason: reason} }

// unavailable wraps an infrastructure failure so callers can match ErrStoreUnavailable.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
