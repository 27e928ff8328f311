package mailer

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/myduka/myduka-backend/pkg/config"
)

// Mailer sends transactional email. Delivery failures are surfaced to the
// caller; nothing is retried here.
type Mailer interface {
	SendAdminInvitation(to, invitationLink string, validHours int) error
}

// SMTPMailer implements Mailer over SMTP
type SMTPMailer struct {
	dialer *gomail.Dialer
	sender string
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(cfg config.Mail) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		sender: cfg.Sender,
	}
}

// SendAdminInvitation emails a tokenized admin registration link
func (m *SMTPMailer) SendAdminInvitation(to, invitationLink string, validHours int) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "MyDuka Admin Invitation")
	msg.SetBody("text/plain", fmt.Sprintf(
		"You have been invited to register as an Admin for MyDuka.\n\n"+
			"Please click the link below to complete your registration:\n%s\n\n"+
			"This invitation link is valid for %d hours.\n"+
			"If you did not expect this, please ignore this email.\n",
		invitationLink, validHours,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send invitation email: %w", err)
	}
	return nil
}

// NoopMailer discards mail. Used in development when SMTP is not configured.
type NoopMailer struct{}

func (NoopMailer) SendAdminInvitation(string, string, int) error { return nil }
