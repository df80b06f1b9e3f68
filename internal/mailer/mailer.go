package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/rentease/rentease-backend/config"
	"github.com/rentease/rentease-backend/pkg/logger"
)

// Mailer delivers transactional email. Services depend on this interface so
// tests can capture outgoing mail.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	host     string
	port     string
	from     string
	password string
}

func NewSMTPMailer(cfg *config.SMTPConfig) Mailer {
	return &smtpMailer{
		host:     cfg.Host,
		port:     cfg.Port,
		from:     cfg.From,
		password: cfg.Password,
	}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	logger.Debug("Sending email", map[string]interface{}{
		"to":      to,
		"subject": subject,
	})

	auth := smtp.PlainAuth("", m.from, m.password, m.host)

	msg := []byte(fmt.Sprintf("From: \"RentEase Support\" <%s>\r\n", m.from) +
		fmt.Sprintf("To: %s\r\n", to) +
		fmt.Sprintf("Subject: %s\r\n", subject) +
		"\r\n" +
		body + "\r\n")

	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		logger.Error("Failed to send email", err, map[string]interface{}{
			"to": to,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.Debug("Email sent", map[string]interface{}{
		"to": to,
	})
	return nil
}
