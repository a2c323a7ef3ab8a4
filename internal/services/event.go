package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventsite/internal/domain"
	"eventsite/internal/slug"
	"eventsite/internal/validation"
)

type eventService struct {
	eventRepo      domain.EventRepository
	sanitizer      domain.Sanitizer
	contextTimeout time.Duration
}

// NewEventService creates an EventService over the given repository.
func NewEventService(eventRepo domain.EventRepository, sanitizer domain.Sanitizer, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		sanitizer:      sanitizer,
		contextTimeout: timeout,
	}
}

// Create runs the validation engine, then inserts. Phase one checks the raw
// input so error messages match what the user typed; phase two checks name
// uniqueness against the store. Sanitization happens after both phases pass,
// and only sanitized values are persisted. A racing insert that slips past
// the pre-check is caught by the store's unique constraint and reported as
// the same name error.
func (s *eventService) Create(ctx context.Context, input domain.EventInput, creatorID int64) (*domain.Event, validation.Errors, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	errs := validation.Event(input.Name, input.Description)

	existing, err := s.eventRepo.GetByName(ctx, input.Name)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, nil, fmt.Errorf("get event by name: %w", err)
	}
	if existing != nil {
		errs = errs.Add("name", validation.MsgNameTaken)
	}
	if len(errs) > 0 {
		return nil, errs, nil
	}

	name := s.clean(input.Name)
	event := &domain.Event{
		Name:        name,
		Slug:        slug.Make(name),
		Location:    input.Location,
		URL:         input.URL,
		Description: s.clean(input.Description),
		CreatorID:   creatorID,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, validation.Single("name", validation.MsgNameTaken), nil
		}
		return nil, nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil, nil
}

// Update is a full-row write: name, slug, location, url and description are
// always written together and the updated timestamp advances. There is no
// partial update. The uniqueness check skips a hit on the record's own id,
// so an event may keep its name.
func (s *eventService) Update(ctx context.Context, id int64, input domain.EventInput) (*domain.Event, validation.Errors, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	errs := validation.Event(input.Name, input.Description)

	existing, err := s.eventRepo.GetByName(ctx, input.Name)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, nil, fmt.Errorf("get event by name: %w", err)
	}
	if existing != nil && existing.ID != id {
		errs = errs.Add("name", validation.MsgNameTaken)
	}
	if len(errs) > 0 {
		return nil, errs, nil
	}

	name := s.clean(input.Name)
	event := &domain.Event{
		ID:          id,
		Name:        name,
		Slug:        slug.Make(name),
		Location:    input.Location,
		URL:         input.URL,
		Description: s.clean(input.Description),
	}
	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, validation.Single("name", validation.MsgNameTaken), nil
		}
		return nil, nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil, nil
}

func (s *eventService) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) GetBySlug(ctx context.Context, eventSlug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, eventSlug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// ListPage returns one id-ordered page and the catalog's count. The count is
// max(id), an approximation that overstates cardinality after deletes; it is
// used for page-count estimates only.
func (s *eventService) ListPage(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListPage(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events page: %w", err)
	}
	count, err := s.eventRepo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}
	return events, count, nil
}

func (s *eventService) clean(text string) string {
	return s.sanitizer.EscapeAndTrim(s.sanitizer.Sanitize(text))
}
