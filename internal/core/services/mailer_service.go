package services

import (
	"fmt"
	"log"

	"tripway/internal/config"

	gomail "github.com/wneessen/go-mail"
)

// Mailer delivers reminder messages to passengers
type Mailer interface {
	IsEnabled() bool
	Send(to, subject, body string) error
}

// MailerService sends mail over SMTP. Delivery is a no-op while
// disabled so dev environments run without a relay.
type MailerService struct {
	cfg config.SMTPConfig
}

// NewMailerService creates a new mailer service
func NewMailerService(cfg config.SMTPConfig) *MailerService {
	if !cfg.Enabled {
		log.Println("⚠️ SMTP disabled, reminder mail will be logged only")
	}
	return &MailerService{cfg: cfg}
}

// IsEnabled checks if mail delivery is enabled
func (s *MailerService) IsEnabled() bool {
	return s.cfg.Enabled
}

// Send delivers one message
func (s *MailerService) Send(to, subject, body string) error {
	if !s.cfg.Enabled {
		log.Printf("📧 [dry-run] to=%s subject=%q", to, subject)
		return nil
	}

	msg := gomail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	client, err := gomail.NewClient(s.cfg.Host,
		gomail.WithPort(s.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.Username),
		gomail.WithPassword(s.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	return client.DialAndSend(msg)
}
