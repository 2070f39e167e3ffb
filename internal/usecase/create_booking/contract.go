package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/salon-booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetObstaclesByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	GetObstaclesByDateForUpdate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// BlockedSlotRepository интерфейс репозитория блокировок
type BlockedSlotRepository interface {
	GetByDate(ctx context.Context, date time.Time) ([]*domain.BlockedSlot, error)
	GetByDateForUpdate(ctx context.Context, date time.Time) ([]*domain.BlockedSlot, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
}

// HoursProvider источник расписания работы салона
type HoursProvider interface {
	GetHours(ctx context.Context) (domain.WeeklyHours, error)
}

// Notifier отправка уведомлений (асинхронно, без ошибок)
type Notifier interface {
	BookingCreated(booking *domain.Booking)
}

// Metrics учет исходов бронирования
type Metrics interface {
	ObserveBookingAttempt(outcome string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
