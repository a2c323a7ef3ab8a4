package domain

import (
	"context"
	"time"

	"eventsite/internal/validation"
)

// User represents an account. Admin accounts may manage events; everyone
// else may register for them.
type User struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Username string    `json:"username"`
	Admin    bool      `json:"admin"`
	Created  time.Time `json:"created"`
}

// NewUser returns a new User with the given fields. ID is set by the
// repository on create.
func NewUser(name, username string) *User {
	return &User{Name: name, Username: username}
}

// TokenClaims is the identity carried by a verified bearer token.
type TokenClaims struct {
	UserID   int64
	Username string
	Admin    bool
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	// Create inserts the user with the given password hash and fills in ID.
	Create(ctx context.Context, user *User, passwordHash string) error
	// GetByUsername returns the user and its stored password hash.
	GetByUsername(ctx context.Context, username string) (*User, string, error)
	GetByID(ctx context.Context, id int64) (*User, error)
}

// PasswordHasher handles password hashing and verification.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID int64, username string, admin bool, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated identity.
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}

// Sanitizer strips active markup from untrusted text and escapes it for
// storage. Sanitize removes script content; EscapeAndTrim HTML-escapes and
// trims surrounding whitespace.
type Sanitizer interface {
	Sanitize(text string) string
	EscapeAndTrim(text string) string
}

// AuthService defines sign-up, login and the admin capability check.
type AuthService interface {
	SignUp(ctx context.Context, name, username, password string) (*User, validation.Errors, error)
	Login(ctx context.Context, username, password string) (token string, user *User, err error)
	IsAdmin(ctx context.Context, username string) (bool, error)
}
