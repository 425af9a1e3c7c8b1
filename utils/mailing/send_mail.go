package mailing

import (
	"context"
	"fmt"
	"fooddonation-backend/models"

	"gopkg.in/gomail.v2"
)

// sender is satisfied by *gomail.Dialer
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer delivers HTML email through a single SMTP relay
type SMTPMailer struct {
	from   string
	dialer sender
}

// NewSMTPMailer returns nil when no SMTP host is configured
func NewSMTPMailer(cfg *models.Config) *SMTPMailer {
	if cfg.SMTPHost == "" {
		return nil
	}
	return &SMTPMailer{
		from:   cfg.SMTPFrom,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	message := gomail.NewMessage()
	message.SetHeader("From", m.from)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
