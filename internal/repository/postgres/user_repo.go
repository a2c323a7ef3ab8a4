package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventsite/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{
		DB: db,
	}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User, passwordHash string) error {
	query := `
		INSERT INTO users (name, username, password, admin)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created
	`
	err := r.DB.QueryRowContext(ctx, query, u.Name, u.Username, passwordHash, u.Admin).
		Scan(&u.ID, &u.Created)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, string, error) {
	query := `
		SELECT id, name, username, password, admin, created
		FROM users
		WHERE username = $1
	`
	u := &domain.User{}
	var hash string
	err := r.DB.QueryRowContext(ctx, query, username).
		Scan(&u.ID, &u.Name, &u.Username, &hash, &u.Admin, &u.Created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", domain.ErrNotFound
		}
		return nil, "", err
	}
	return u, hash, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, name, username, admin, created
		FROM users
		WHERE id = $1
	`
	u := &domain.User{}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&u.ID, &u.Name, &u.Username, &u.Admin, &u.Created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}
