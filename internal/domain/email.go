package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// WelcomeEmailData holds data for the welcome email sent after registration.
type WelcomeEmailData struct {
	Email string
	Name  string
}

// ReceiptEmailData holds data for the token purchase receipt email.
type ReceiptEmailData struct {
	Email       string
	Name        string
	OrderID     string
	PackageName string
	Tokens      int
	GrossAmount int64
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendWelcome(ctx context.Context, data *WelcomeEmailData) error
	SendReceipt(ctx context.Context, data *ReceiptEmailData) error
}
