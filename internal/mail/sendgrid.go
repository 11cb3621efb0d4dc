package mail

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// sendGridSender delivers through the SendGrid v3 API.
type sendGridSender struct {
	cfg Config
}

func (s *sendGridSender) Send(subject, body string) error {
	from := sgmail.NewEmail("", s.cfg.From)
	to := sgmail.NewEmail("", s.cfg.To)
	message := sgmail.NewSingleEmail(from, subject, to, body, "")

	client := sendgrid.NewSendClient(s.cfg.SendGridAPIKey)

	log.Printf("INFO: sending email via sendgrid to %s", s.cfg.To)
	resp, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send: unexpected status %d", resp.StatusCode)
	}
	return nil
}
