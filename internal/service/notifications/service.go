package notifications

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/internal/integrations/mailer"
)

// Service отправляет письма о бронированиях
// Отправка асинхронная, ошибки только логируются и не влияют на бронирование
type Service struct {
	sender   Sender
	settings SettingsProvider
	metrics  Metrics
	logger   Logger
	timeout  time.Duration
	wg       sync.WaitGroup
}

// NewService создает сервис уведомлений
func NewService(sender Sender, settings SettingsProvider, metrics Metrics, logger Logger, timeout time.Duration) *Service {
	return &Service{
		sender:   sender,
		settings: settings,
		metrics:  metrics,
		logger:   logger,
		timeout:  timeout,
	}
}

// BookingCreated отправляет копии клиенту и администратору о новом бронировании
func (s *Service) BookingCreated(booking *domain.Booking) {
	s.dispatch(EventBookingCreated, booking)
}

// BookingStatusChanged отправляет письма только при переходе в confirmed или cancelled
func (s *Service) BookingStatusChanged(booking *domain.Booking) {
	switch booking.Status {
	case domain.StatusConfirmed:
		s.dispatch(EventBookingConfirmed, booking)
	case domain.StatusCancelled:
		s.dispatch(EventBookingCancelled, booking)
	}
}

// Wait дожидается завершения отправок, запущенных до вызова
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) dispatch(event Event, booking *domain.Booking) {
	snapshot := *booking

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		s.send(ctx, event, &snapshot)
	}()
}

func (s *Service) send(ctx context.Context, event Event, booking *domain.Booking) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		s.logger.Warn("Notifications: %s for booking id=%d skipped, settings unavailable: %v", event, booking.ID, err)
		s.metrics.ObserveNotification(string(event), false)
		return
	}

	email := settings.Email
	if !email.IsConfigured() {
		s.logger.Info("Notifications: %s for booking id=%d skipped, email is not configured", event, booking.ID)
		return
	}

	recipients := map[Audience][]string{}
	if email.NotifyCustomer && booking.CustomerEmail != "" {
		recipients[AudienceCustomer] = []string{booking.CustomerEmail}
	}
	if email.NotifyAdmin && len(email.AdminRecipients) > 0 {
		recipients[AudienceAdmin] = email.AdminRecipients
	}

	for _, audience := range []Audience{AudienceCustomer, AudienceAdmin} {
		to, ok := recipients[audience]
		if !ok {
			continue
		}

		subject, html, err := render(event, audience, booking, settings)
		if err != nil {
			s.logger.Error("Notifications: failed to render %s/%s for booking id=%d: %v", event, audience, booking.ID, err)
			s.metrics.ObserveNotification(string(event), false)
			continue
		}

		msg := mailer.Message{
			To:           to,
			Subject:      subject,
			HTML:         html,
			SMTPHost:     email.SMTPHost,
			SMTPPort:     email.SMTPPort,
			SMTPUser:     email.SMTPUser,
			SMTPPassword: email.SMTPPassword,
			FromEmail:    email.FromEmail,
			FromName:     email.FromName,
		}

		if err := s.sender.Send(ctx, msg); err != nil {
			s.logger.Warn("Notifications: failed to send %s/%s for booking id=%d: %v", event, audience, booking.ID, err)
			s.metrics.ObserveNotification(string(event), false)
			continue
		}

		s.logger.Info("Notifications: sent %s/%s for booking id=%d", event, audience, booking.ID)
		s.metrics.ObserveNotification(string(event), true)
	}
}
