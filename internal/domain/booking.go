package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/salon-booking-service/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// IsValid returns true for one of the four known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// ParseBookingStatus converts a raw string into a BookingStatus
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("unknown booking status %q", s)
	}
	return status, nil
}

// Booking represents a customer appointment for one service
type Booking struct {
	ID              int64
	ServiceID       int64
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime returns StartTime + DurationMinutes
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// Interval returns the half-open time-of-day interval occupied by the booking
func (b *Booking) Interval() (TimeInterval, error) {
	end, err := b.EndTime()
	if err != nil {
		return TimeInterval{}, err
	}
	return TimeInterval{Start: b.StartTime, End: end}, nil
}

// IsObstacle returns true if the booking occupies its interval.
// Completed bookings still occupy the slot; cancelled ones never do.
func (b *Booking) IsObstacle() bool {
	return b.Status != StatusCancelled
}

// IsActive returns true for pending and confirmed bookings
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// StartsAt returns the absolute start moment in the salon's location
func (b *Booking) StartsAt(loc *time.Location) time.Time {
	return b.StartTime.On(b.BookingDate, loc)
}

// CanBeCancelledByCustomer returns true if a customer may still cancel the booking at now:
// the booking must be pending or confirmed and must not have started yet.
func (b *Booking) CanBeCancelledByCustomer(now time.Time, loc *time.Location) bool {
	if !b.IsActive() {
		return false
	}
	return b.StartsAt(loc).After(now)
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	StartDate        *time.Time     // Начало периода (включительно)
	EndDate          *time.Time     // Конец периода (включительно)
	Status           *BookingStatus // Конкретный статус
	ServiceID        *int64         // Конкретная услуга
	CustomerEmail    *string        // Бронирования клиента
	IncludeCancelled bool           // Включать ли отмененные (игнорируется, если задан Status)
	Limit            uint64         // 0 = без ограничения
	ForUpdate        bool           // Блокировать строки (только в транзакции на запись)
}

// IsSingleDay true, если фильтр ограничен одной датой
func (f BookingsFilter) IsSingleDay() bool {
	return f.StartDate != nil && f.EndDate != nil && SameDate(*f.StartDate, *f.EndDate)
}
