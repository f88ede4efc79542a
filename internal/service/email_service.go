package service

import (
	"context"
	"log/slog"

	"Club_Portal/internal/model"
	"Club_Portal/internal/pkg"
)

// Mailer delivers one HTML message.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPMailer sends through gomail.
type SMTPMailer struct {
	Config pkg.SMTPConfig
}

func (m SMTPMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	return pkg.SendEmail(m.Config, to, subject, htmlBody)
}

type EmailService struct {
	mailer Mailer
}

func NewEmailService(mailer Mailer) *EmailService {
	return &EmailService{mailer: mailer}
}

// NotifyActivated mails the account holder. Delivery failures are logged, never returned.
func (s *EmailService) NotifyActivated(ctx context.Context, acct *model.Account) {
	if s == nil || s.mailer == nil {
		return
	}
	if err := s.mailer.Send(ctx, acct.Email, pkg.ActivationSubject, pkg.ActivationHTML(acct.Username)); err != nil {
		slog.Warn("failed to send activation mail", "account_id", acct.ID, "error", err)
	}
}
