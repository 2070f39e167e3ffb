package create_booking

import (
	"time"

	"github.com/m04kA/salon-booking-service/pkg/types"
)

// Config параметры расписания салона
type Config struct {
	Location       *time.Location // Таймзона салона
	MaxAdvanceDays int            // 0 = без ограничения
}

// Request модель запроса на создание бронирования
type Request struct {
	ServiceID     int64            // ID услуги
	Date          time.Time        // Дата бронирования (без времени)
	StartTime     types.TimeString // Время начала (например, "10:00")
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         *string // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	ServiceID       int64
	BookingDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          string

	// Денормализованные данные
	ServiceName  string
	ServicePrice float64

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
