package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventsite/internal/domain"
	"eventsite/internal/validation"
)

type registrationService struct {
	registrationRepo domain.RegistrationRepository
	userRepo         domain.UserRepository
	sanitizer        domain.Sanitizer
	emailService     domain.EmailService
	contextTimeout   time.Duration
}

// NewRegistrationService creates a RegistrationService. emailService may be
// nil; registration notices are then skipped.
func NewRegistrationService(
	registrationRepo domain.RegistrationRepository,
	userRepo domain.UserRepository,
	sanitizer domain.Sanitizer,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		userRepo:         userRepo,
		sanitizer:        sanitizer,
		emailService:     emailService,
		contextTimeout:   timeout,
	}
}

// Register validates the comment against the raw input, rejects a duplicate
// (user, event) pair before any insert, then persists the sanitized comment.
// The store's unique constraint catches racing registrations and maps to the
// same already-registered error.
func (s *registrationService) Register(ctx context.Context, event *domain.Event, userID int64, comment string) (*domain.Registration, validation.Errors, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	errs := validation.Comment(comment)

	exists, err := s.registrationRepo.ExistsForUserAndEvent(ctx, userID, event.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("check registration: %w", err)
	}
	if exists {
		errs = errs.Add("registration", validation.MsgAlreadyRegistered)
	}
	if len(errs) > 0 {
		return nil, errs, nil
	}

	reg := &domain.Registration{
		UserID:  userID,
		EventID: event.ID,
		Comment: s.sanitizer.EscapeAndTrim(s.sanitizer.Sanitize(comment)),
	}
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, validation.Single("registration", validation.MsgAlreadyRegistered), nil
		}
		return nil, nil, fmt.Errorf("create registration: %w", err)
	}

	s.sendNotice(ctx, event, userID, reg.Comment)
	return reg, nil, nil
}

// sendNotice emails the site operator about the new registration. Best
// effort: a mail failure never fails the registration.
func (s *registrationService) sendNotice(ctx context.Context, event *domain.Event, userID int64, comment string) {
	if s.emailService == nil {
		return
	}
	userName := ""
	if user, err := s.userRepo.GetByID(ctx, userID); err == nil {
		userName = user.Name
	}
	_ = s.emailService.SendRegistrationNotice(ctx, &domain.RegistrationNoticeEmailData{
		EventName: event.Name,
		UserName:  userName,
		Comment:   comment,
	})
}

func (s *registrationService) Drop(ctx context.Context, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.registrationRepo.DropByUser(ctx, userID); err != nil {
		return fmt.Errorf("drop registrations: %w", err)
	}
	return nil
}

func (s *registrationService) ListForEvent(ctx context.Context, eventID int64) ([]*domain.Registrant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	registrants, err := s.registrationRepo.ListForEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrants: %w", err)
	}
	return registrants, nil
}

func (s *registrationService) IsRegistered(ctx context.Context, userID, eventID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	exists, err := s.registrationRepo.ExistsForUserAndEvent(ctx, userID, eventID)
	if err != nil {
		return false, fmt.Errorf("check registration: %w", err)
	}
	return exists, nil
}
