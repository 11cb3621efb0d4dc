package mail

import (
	"fmt"
	"log"
	"net/smtp"
)

// Sender submits a composed subject and body. Delivery is fire-and-forget:
// callers do not consume any delivery confirmation.
type Sender interface {
	Send(subject, body string) error
}

// Service names accepted by New.
const (
	ServiceSMTP     = "smtp"
	ServiceSendGrid = "sendgrid"
)

// Config holds outbound email settings.
type Config struct {
	Service string // "smtp" or "sendgrid"

	From string
	To   string

	// SMTP settings.
	Password   string
	SMTPServer string
	SMTPPort   int

	// SendGrid settings.
	SendGridAPIKey string
}

// New selects a Sender implementation by service name.
func New(cfg Config) (Sender, error) {
	switch cfg.Service {
	case "", ServiceSMTP:
		return &smtpSender{cfg: cfg}, nil
	case ServiceSendGrid:
		return &sendGridSender{cfg: cfg}, nil
	default:
		return nil, fmt.Errorf("unknown mail service %q", cfg.Service)
	}
}

// smtpSender delivers through a plain-auth SMTP relay.
type smtpSender struct {
	cfg Config
}

func (s *smtpSender) Send(subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPServer, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.From, s.cfg.Password, s.cfg.SMTPServer)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.cfg.From, s.cfg.To, subject, body)

	log.Printf("INFO: sending email via smtp to %s", s.cfg.To)
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{s.cfg.To}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
