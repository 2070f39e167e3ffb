package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/salon-booking-service/internal/domain"
	bookingRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/booking"
	"github.com/m04kA/salon-booking-service/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	bookingRepo  BookingRepository
	notifier     Notifier
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
// location - часовой пояс салона, в нем сравнивается время начала визита с текущим
func NewService(
	bookingRepo BookingRepository,
	notifier Notifier,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID (администратор)
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking), nil
}

// GetForCustomer получает бронирование клиента
// Email должен совпадать с email бронирования без учета регистра
func (s *Service) GetForCustomer(ctx context.Context, id int64, email string) (*models.BookingResponse, error) {
	booking, err := s.get(ctx, "GetForCustomer", id)
	if err != nil {
		return nil, err
	}

	if !sameEmail(booking.CustomerEmail, email) {
		s.logger.Warn("GetForCustomer: email mismatch for booking id=%d", id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования с фильтрацией (администратор)
// Отменённые бронирования исключаются, если не задан IncludeCancelled или конкретный статус
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// ListByCustomer получает историю бронирований клиента по email, включая отменённые
func (s *Service) ListByCustomer(ctx context.Context, email string) (*models.BookingListResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{
		CustomerEmail:    &email,
		IncludeCancelled: true,
	})
	if err != nil {
		s.logger.Error("ListByCustomer: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListByCustomer - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus устанавливает любой статус (администратор)
// Таблицы переходов нет: можно вернуть бронирование из completed или cancelled
// Письма отправляются только при переходе в confirmed или cancelled
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", bookingID, req.Status)

	// 1. Валидируем статус
	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	// 2. Получаем бронирование
	booking, err := s.get(ctx, "UpdateStatus", bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status == newStatus {
		s.logger.Info("UpdateStatus: booking id=%d already has status=%s", bookingID, newStatus)
		return models.FromDomainBooking(booking), nil
	}

	// 3. Обновляем статус
	if newStatus == domain.StatusCancelled && req.CancellationReason != nil {
		err = s.bookingRepo.Cancel(ctx, bookingID, *req.CancellationReason)
	} else {
		err = s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus)
	}
	if err != nil {
		return nil, s.mapWriteError("UpdateStatus", bookingID, err)
	}

	// 4. Перечитываем и уведомляем
	updated, err := s.get(ctx, "UpdateStatus", bookingID)
	if err != nil {
		return nil, err
	}

	s.notifier.BookingStatusChanged(updated)

	s.logger.Info("UpdateStatus: booking id=%d moved %s -> %s", bookingID, booking.Status, newStatus)
	return models.FromDomainBooking(updated), nil
}

// Cancel отменяет бронирование по запросу клиента
// Разрешено только из pending/confirmed, пока время начала не наступило, и только владельцу email
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: customer cancellation of booking id=%d", bookingID)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	// 1. Получаем бронирование
	booking, err := s.get(ctx, "Cancel", bookingID)
	if err != nil {
		return nil, err
	}

	// 2. Проверяем владельца
	if !sameEmail(booking.CustomerEmail, req.Email) {
		s.logger.Warn("Cancel: email mismatch for booking id=%d", bookingID)
		return nil, ErrAccessDenied
	}

	// 3. Проверяем статус и время начала на момент вызова
	now := s.timeProvider.Now()
	if !booking.CanBeCancelledByCustomer(now, s.location) {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s, starts at %s",
			bookingID, booking.Status, booking.StartsAt(s.location).Format(time.RFC3339))
		return nil, ErrCannotCancel
	}

	// 4. Отменяем
	if err := s.bookingRepo.CancelByCustomer(ctx, bookingID, strings.TrimSpace(req.CancellationReason)); err != nil {
		return nil, s.mapWriteError("Cancel", bookingID, err)
	}

	updated, err := s.get(ctx, "Cancel", bookingID)
	if err != nil {
		return nil, err
	}

	s.notifier.BookingStatusChanged(updated)

	s.logger.Info("Cancel: booking id=%d cancelled by customer", bookingID)
	return models.FromDomainBooking(updated), nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) mapWriteError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		s.logger.Warn("%s: booking id=%d not found during update", op, id)
		return ErrBookingNotFound
	case errors.Is(err, bookingRepo.ErrNotCancellable):
		s.logger.Warn("%s: booking id=%d changed status before cancellation", op, id)
		return ErrCannotCancel
	case errors.Is(err, bookingRepo.ErrSlotNotAvailable):
		s.logger.Warn("%s: booking id=%d overlaps another booking", op, id)
		return ErrSlotNotAvailable
	default:
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

func sameEmail(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}
