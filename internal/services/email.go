package services

import (
	"context"
	"fmt"
	"log/slog"

	"seekers/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendWelcome sends a welcome email using the "welcome" template and the given data.
func (s *emailService) SendWelcome(ctx context.Context, data *domain.WelcomeEmailData) error {
	if data == nil {
		return fmt.Errorf("welcome email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("welcome", data)
	if err != nil {
		return fmt.Errorf("failed to render welcome template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	s.logger.Info("welcome email sent", "email", data.Email)
	return nil
}

// SendReceipt sends the token purchase receipt email using the "receipt" template.
func (s *emailService) SendReceipt(ctx context.Context, data *domain.ReceiptEmailData) error {
	if data == nil {
		return fmt.Errorf("receipt email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("receipt", data)
	if err != nil {
		return fmt.Errorf("failed to render receipt template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send receipt email: %w", err)
	}
	s.logger.Info("receipt email sent", "email", data.Email, "order_id", data.OrderID)
	return nil
}
