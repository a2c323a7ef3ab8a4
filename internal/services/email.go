package services

import (
	"context"
	"fmt"

	"eventsite/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	noticeTo string
}

// NewEmailService returns an EmailService that uses the given Mailer and
// template renderer. noticeTo is the operator address that receives
// registration notices; when empty, notices are skipped.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, noticeTo string) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, noticeTo: noticeTo}
}

// SendRegistrationNotice sends the new-registration notice using the
// "registration_notice" template.
func (s *emailService) SendRegistrationNotice(ctx context.Context, data *domain.RegistrationNoticeEmailData) error {
	if data == nil {
		return fmt.Errorf("registration notice data is nil")
	}
	if s.noticeTo == "" {
		return nil
	}
	subject, htmlBody, textBody, err := s.renderer.Render("registration_notice", data)
	if err != nil {
		return fmt.Errorf("failed to render registration_notice template: %w", err)
	}
	if err := s.mailer.Send(s.noticeTo, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send registration notice: %w", err)
	}
	return nil
}
