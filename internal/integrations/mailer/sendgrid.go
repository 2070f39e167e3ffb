package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridSender отправляет письма через SendGrid API
// SMTP параметры письма игнорируются, отправитель берется из from_email/from_name
type SendGridSender struct {
	client *sendgrid.Client
	log    Logger
}

// NewSendGridSender создает отправителя SendGrid, nil без API ключа
func NewSendGridSender(apiKey string, log Logger) *SendGridSender {
	if apiKey == "" {
		return nil
	}
	return &SendGridSender{
		client: sendgrid.NewSendClient(apiKey),
		log:    log,
	}
}

// Send отправляет одно письмо со всеми получателями
func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("%w: sendgrid api key is empty", ErrNotConfigured)
	}
	if err := msg.Validate(); err != nil {
		return err
	}

	response, err := s.client.SendWithContext(ctx, newSendGridMessage(msg))
	if err != nil {
		return fmt.Errorf("%w: sendgrid: %v", ErrDeliveryFailed, err)
	}
	if response.StatusCode >= 400 {
		s.log.Error("SendGrid returned status=%d body=%s", response.StatusCode, response.Body)
		return fmt.Errorf("%w: sendgrid returned status %d", ErrDeliveryFailed, response.StatusCode)
	}

	s.log.Info("Email sent via SendGrid subject=%q recipients=%d status=%d", msg.Subject, len(msg.To), response.StatusCode)
	return nil
}

func newSendGridMessage(msg Message) *mail.SGMailV3 {
	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(msg.FromName, msg.FromEmail))
	m.Subject = msg.Subject

	p := mail.NewPersonalization()
	for _, to := range msg.To {
		p.AddTos(mail.NewEmail("", to))
	}
	m.AddPersonalizations(p)
	m.AddContent(mail.NewContent("text/html", msg.HTML))
	return m
}
