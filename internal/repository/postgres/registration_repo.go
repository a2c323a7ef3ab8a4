package postgres

import (
	"context"
	"database/sql"

	"eventsite/internal/domain"
)

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{
		DB: db,
	}
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO registrations (user_id, event_id, comment)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, reg.UserID, reg.EventID, reg.Comment).Scan(&reg.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

// DropByUser deletes by user id only, ignoring the event. One call removes
// the user's registrations for every event; the narrower (user, event) match
// exists only on the existence check.
func (r *registrationRepository) DropByUser(ctx context.Context, userID int64) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM registrations WHERE user_id = $1`, userID)
	return err
}

func (r *registrationRepository) ListForEvent(ctx context.Context, eventID int64) ([]*domain.Registrant, error) {
	query := `
		SELECT r.id, u.name, r.comment
		FROM registrations AS r
		LEFT JOIN users AS u ON u.id = r.user_id
		WHERE r.event_id = $1
		ORDER BY r.id
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	registrants := make([]*domain.Registrant, 0)
	for rows.Next() {
		reg := &domain.Registrant{}
		var name sql.NullString
		if err := rows.Scan(&reg.ID, &name, &reg.Comment); err != nil {
			return nil, err
		}
		if name.Valid {
			reg.Name = name.String
		}
		registrants = append(registrants, reg)
	}
	return registrants, rows.Err()
}

func (r *registrationRepository) ExistsForUserAndEvent(ctx context.Context, userID, eventID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM registrations WHERE user_id = $1 AND event_id = $2
		)
	`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, userID, eventID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
