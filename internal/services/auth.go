package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventsite/internal/domain"
	"eventsite/internal/validation"
)

type authService struct {
	userRepo       domain.UserRepository
	hasher         domain.PasswordHasher
	tokenIssuer    domain.TokenIssuer
	tokenExpiry    time.Duration
	contextTimeout time.Duration
}

// NewAuthService creates an AuthService with the given repository and ports.
func NewAuthService(userRepo domain.UserRepository, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, tokenExpiry, timeout time.Duration) domain.AuthService {
	return &authService{
		userRepo:       userRepo,
		hasher:         hasher,
		tokenIssuer:    tokenIssuer,
		tokenExpiry:    tokenExpiry,
		contextTimeout: timeout,
	}
}

// SignUp validates the fields structurally, checks username availability,
// and creates the account with a hashed password. A racing sign-up hitting
// the username constraint maps to the same field error as the pre-check.
func (s *authService) SignUp(ctx context.Context, name, username, password string) (*domain.User, validation.Errors, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	errs := validation.SignUp(name, username, password)

	if _, _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		errs = errs.Add("username", validation.MsgUsernameTaken)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, nil, fmt.Errorf("get user by username: %w", err)
	}
	if len(errs) > 0 {
		return nil, errs, nil
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}
	user := domain.NewUser(name, username)
	if err := s.userRepo.Create(ctx, user, hash); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, validation.Single("username", validation.MsgUsernameTaken), nil
		}
		return nil, nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil, nil
}

// Login verifies the credentials and issues a bearer token. A missing user
// and a wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, hash, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("get user by username: %w", err)
	}
	if err := s.hasher.Compare(hash, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	token, err := s.tokenIssuer.Issue(user.ID, user.Username, user.Admin, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

func (s *authService) IsAdmin(ctx context.Context, username string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, _, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get user by username: %w", err)
	}
	return user.Admin, nil
}
