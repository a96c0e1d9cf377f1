// Package mailer delivers transactional mail over SMTP.
package mailer

import (
	"context"
	"log/slog"

	"gopkg.in/gomail.v2"
)

// Config carries SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Configured reports whether credentials are present. Without them the
// application skips mail delivery and logs reset links instead.
func (c Config) Configured() bool {
	return c.Username != "" && c.Password != ""
}

// SMTPMailer sends mail through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	logger *slog.Logger
}

// NewSMTPMailer constructs the mailer.
func NewSMTPMailer(cfg Config, logger *slog.Logger) *SMTPMailer {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   from,
		logger: logger.With("component", "mailer.smtp"),
	}
}

// Send delivers a single HTML message. gomail dials per message; the
// context deadline is not propagated into the SMTP dial, matching the
// best-effort nature of reset mail.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return err
	}
	m.logger.Info("mail sent", "to", to, "subject", subject)
	return nil
}
