package domain

import (
	"context"
	"time"

	"eventsite/internal/validation"
)

// Event represents a listed event. Slug is derived from Name and is the
// public lookup key; it is only as unique as Name is (two names that slugify
// identically produce ambiguous lookups, which is accepted).
type Event struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Location    string    `json:"location"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	CreatorID   int64     `json:"creator_id"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

// EventInput carries the writable event fields of a create or update request.
// Updates are full-row: every field is written, there is no partial update.
type EventInput struct {
	Name        string
	Location    string
	URL         string
	Description string
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	// Create inserts the event and fills in ID, Created and Updated.
	Create(ctx context.Context, event *Event) error
	// Update writes name, slug, location, url and description for the row
	// with event.ID and refreshes Updated. Returns ErrNotFound when no row
	// matched.
	Update(ctx context.Context, event *Event) error
	// Delete removes the row by id. Deleting a missing id is not an error;
	// callers must not infer existence from a nil result.
	Delete(ctx context.Context, id int64) error
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	GetByName(ctx context.Context, name string) (*Event, error)
	// List returns every event. Order is not part of the contract.
	List(ctx context.Context) ([]*Event, error)
	// ListPage returns one page ordered by id ascending.
	ListPage(ctx context.Context, params PaginationParams) ([]*Event, error)
	// Count returns max(id), not a true row count. The value drifts from the
	// real cardinality after deletes; it is kept as a documented
	// approximation for page-count estimates.
	Count(ctx context.Context) (int64, error)
}

// EventService defines the business logic for the event catalog. Mutations
// run the two-phase validation engine first; a non-empty validation.Errors
// return means the mutation was not attempted.
type EventService interface {
	Create(ctx context.Context, input EventInput, creatorID int64) (*Event, validation.Errors, error)
	Update(ctx context.Context, id int64, input EventInput) (*Event, validation.Errors, error)
	Delete(ctx context.Context, id int64) error
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	// ListPage returns one page plus the catalog's count approximation.
	ListPage(ctx context.Context, params PaginationParams) ([]*Event, int64, error)
}
