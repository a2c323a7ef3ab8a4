// Package postgres implements the storage interfaces from internal/domain
// over database/sql with the lib/pq driver.
//
// Error contract: transport failures surface as wrapped errors, a lookup
// that matches no row returns domain.ErrNotFound, and an empty list is an
// empty slice with a nil error. A unique-constraint violation returns
// domain.ErrDuplicate so services can fold racing inserts into the same
// duplicate error their pre-check produces.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	_ "embed"
	"fmt"
	"time"

	"github.com/lib/pq"
)

//go:embed schema.sql
var schemaSQL string

//go:embed drop.sql
var dropSQL string

const (
	maxOpenConns    = 10
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
)

// Open opens a bounded connection pool for the given DSN and verifies the
// backend is reachable. Callers are expected to treat a failure here as
// fatal; there is no retry.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// InstallSchema executes the embedded schema script as one batched statement.
func InstallSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("install schema: %w", err)
	}
	return nil
}

// DropSchema executes the embedded drop script as one batched statement.
func DropSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, dropSQL); err != nil {
		return fmt.Errorf("drop schema: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
