package create_booking

import (
	"errors"

	"github.com/m04kA/salon-booking-service/internal/availability"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или отключена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение maxAdvanceDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrClosed возвращается, когда салон закрыт в указанную дату
	ErrClosed = errors.New("create_booking: salon is closed on this date")

	// ErrOutsideHours возвращается, когда услуга не помещается в часы работы
	ErrOutsideHours = errors.New("create_booking: outside operating hours")

	// ErrInPast возвращается, когда время начала сегодня уже прошло
	ErrInPast = errors.New("create_booking: start time has already passed")

	// ErrSlotNotAvailable возвращается, когда интервал пересекается с бронированием или блокировкой
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// RejectedError отказ повторной проверки
// Содержит свежий список занятых интервалов дня, чтобы клиент мог перерисовать расписание
type RejectedError struct {
	Reason    availability.Reason
	Conflicts []availability.Obstacle
	Obstacles []availability.Obstacle
}

func (e *RejectedError) Error() string {
	return e.Unwrap().Error() + ": " + e.Reason.Message()
}

// Unwrap позволяет сравнивать отказ с ErrSlotNotAvailable, ErrOutsideHours и ErrClosed через errors.Is
func (e *RejectedError) Unwrap() error {
	switch e.Reason {
	case availability.ReasonClosed:
		return ErrClosed
	case availability.ReasonOutsideHours:
		return ErrOutsideHours
	case availability.ReasonInPast:
		return ErrInPast
	default:
		return ErrSlotNotAvailable
	}
}
