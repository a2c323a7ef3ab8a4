package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventsite/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventColumns = "id, name, slug, location, url, description, creator_id, created, updated"

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, slug, location, url, description, creator_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created, updated
	`
	err := r.DB.QueryRowContext(ctx, query, e.Name, e.Slug, e.Location, e.URL, e.Description, e.CreatorID).
		Scan(&e.ID, &e.Created, &e.Updated)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET name = $1, slug = $2, location = $3, url = $4, description = $5,
		    updated = CURRENT_TIMESTAMP
		WHERE id = $6
		RETURNING created, updated
	`
	err := r.DB.QueryRowContext(ctx, query, e.Name, e.Slug, e.Location, e.URL, e.Description, e.ID).
		Scan(&e.Created, &e.Updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

// Delete succeeds when the statement executes, whether or not a row matched.
// Callers must not infer existence from a nil result.
func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	return err
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE slug = $1`, eventColumns)
	return r.getOne(ctx, query, slug)
}

func (r *eventRepository) GetByName(ctx context.Context, name string) (*domain.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE name = $1`, eventColumns)
	return r.getOne(ctx, query, name)
}

func (r *eventRepository) getOne(ctx context.Context, query string, arg any) (*domain.Event, error) {
	e := &domain.Event{}
	var creatorID sql.NullInt64
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&e.ID, &e.Name, &e.Slug, &e.Location, &e.URL, &e.Description,
		&creatorID, &e.Created, &e.Updated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if creatorID.Valid {
		e.CreatorID = creatorID.Int64
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events`, eventColumns)
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

func (r *eventRepository) ListPage(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM events
		ORDER BY id
		LIMIT $1 OFFSET $2
	`, eventColumns)
	rows, err := r.DB.QueryContext(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

// Count returns max(id), not COUNT(*). The approximation is only correct
// while ids are never reused and drifts after deletes; it is kept because
// page-count estimates do not need to be exact.
func (r *eventRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) FROM events`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func scanEvents(rows *sql.Rows) ([]*domain.Event, error) {
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		var creatorID sql.NullInt64
		if err := rows.Scan(&e.ID, &e.Name, &e.Slug, &e.Location, &e.URL, &e.Description, &creatorID, &e.Created, &e.Updated); err != nil {
			return nil, err
		}
		if creatorID.Valid {
			e.CreatorID = creatorID.Int64
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
