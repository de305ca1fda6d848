package email

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"

	sharedConfig "github.com/nitrodesk/nitrodesk/internal/shared/config"
)

var ErrNoRecipients = errors.New("email: no recipients")

// messageSender is satisfied by *gomail.Dialer.
type messageSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPEmailService struct {
	config sharedConfig.EmailConfig
	dialer messageSender
}

func NewSMTPEmailService(config sharedConfig.EmailConfig) *SMTPEmailService {
	return &SMTPEmailService{
		config: config,
		dialer: gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPassword),
	}
}

// SendEmail sends a multipart message with a plain-text body and an HTML alternative.
func (s *SMTPEmailService) SendEmail(to []string, subject, htmlBody, plainBody string) error {
	if len(to) == 0 {
		return ErrNoRecipients
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
