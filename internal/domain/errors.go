package domain

import "errors"

// Sentinel errors shared across repositories and services.
var (
	// ErrNotFound is returned when a lookup matches no row. Callers must
	// distinguish it from transport errors before treating a miss as fatal.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when an insert or update violates a store-level
	// uniqueness constraint (event name, (user, event) registration pair,
	// username). Services translate it into the same field error the
	// pre-insert uniqueness check produces.
	ErrDuplicate = errors.New("duplicate")

	// ErrForbidden is returned when the caller lacks the required role.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCredentials is returned on a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
