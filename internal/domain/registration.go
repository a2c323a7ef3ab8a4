package domain

import (
	"context"

	"eventsite/internal/validation"
)

// Registration represents a user's registration for an event. Registrations
// are created and dropped, never updated in place.
type Registration struct {
	ID      int64  `json:"id"`
	UserID  int64  `json:"user_id"`
	EventID int64  `json:"event_id"`
	Comment string `json:"comment"`
}

// Registrant is a registration joined with the registering user's display
// name, as shown on an event page.
type Registrant struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Comment string `json:"comment"`
}

// RegistrationRepository defines storage operations for registrations.
type RegistrationRepository interface {
	// Create inserts the registration and fills in ID.
	Create(ctx context.Context, reg *Registration) error
	// DropByUser deletes every registration held by the user, across all
	// events. The scope is deliberately wider than the (user, event)
	// existence check; see the ledger service.
	DropByUser(ctx context.Context, userID int64) error
	ListForEvent(ctx context.Context, eventID int64) ([]*Registrant, error)
	ExistsForUserAndEvent(ctx context.Context, userID, eventID int64) (bool, error)
}

// RegistrationService defines the business logic for the registration ledger.
type RegistrationService interface {
	// Register validates the comment, rejects duplicates for the
	// (user, event) pair before any insert, and persists the sanitized
	// comment. Non-empty validation.Errors means nothing was inserted.
	// The caller resolves the event (by slug) before registering.
	Register(ctx context.Context, event *Event, userID int64, comment string) (*Registration, validation.Errors, error)
	// Drop removes all of the user's registrations with one call. This
	// mirrors the drop-all behavior of the storage layer on purpose.
	Drop(ctx context.Context, userID int64) error
	ListForEvent(ctx context.Context, eventID int64) ([]*Registrant, error)
	IsRegistered(ctx context.Context, userID, eventID int64) (bool, error)
}
