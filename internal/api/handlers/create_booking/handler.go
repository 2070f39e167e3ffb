package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
	createBooking "github.com/m04kA/salon-booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidInput       = "некорректные данные бронирования"
	msgSlotNotAvailable   = "выбранное время уже занято"
	msgServiceNotFound    = "услуга не найдена"
	msgSalonClosed        = "салон не работает в выбранную дату"
	msgOutsideHours       = "услуга не помещается в часы работы салона"
	msgInPast             = "время начала уже прошло"
	msgInvalidBookingDate = "дата бронирования в прошлом"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
)

var (
	errInvalidDate = errors.New("invalid booking date")
	errInvalidTime = errors.New("invalid start time")
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.handleError(w, &req, err)
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, service_id=%d, date=%s, start=%s",
		result.ID, req.ServiceID, req.BookingDate, req.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) handleError(w http.ResponseWriter, req *CreateBookingRequest, err error) {
	var rejected *createBooking.RejectedError

	switch {
	case errors.As(err, &rejected):
		status, message := rejectionStatus(rejected)
		h.logger.Warn("POST /bookings - Slot rejected: service_id=%d, date=%s, start=%s, reason=%s, conflicts=%d",
			req.ServiceID, req.BookingDate, req.StartTime, rejected.Reason, len(rejected.Conflicts))
		handlers.RespondJSON(w, status, FromRejectedError(message, rejected))

	case errors.Is(err, createBooking.ErrSlotNotAvailable):
		h.logger.Warn("POST /bookings - Slot not available: service_id=%d, date=%s, start=%s",
			req.ServiceID, req.BookingDate, req.StartTime)
		handlers.RespondConflict(w, msgSlotNotAvailable)

	case errors.Is(err, createBooking.ErrServiceNotFound):
		h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, createBooking.ErrInvalidDate):
		h.logger.Warn("POST /bookings - Invalid booking date: service_id=%d, date=%s", req.ServiceID, req.BookingDate)
		handlers.RespondBadRequest(w, msgInvalidBookingDate)

	case errors.Is(err, createBooking.ErrDateTooFarInFuture):
		h.logger.Warn("POST /bookings - Date too far in future: service_id=%d, date=%s", req.ServiceID, req.BookingDate)
		handlers.RespondBadRequest(w, msgDateTooFar)

	case errors.Is(err, createBooking.ErrInvalidInput):
		h.logger.Warn("POST /bookings - Invalid input: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("POST /bookings - Failed to create booking: service_id=%d, date=%s, start=%s, error=%v",
			req.ServiceID, req.BookingDate, req.StartTime, err)
		handlers.RespondInternalError(w)
	}
}

// rejectionStatus пересечение с занятым временем это конфликт (409),
// остальные отказы означают, что такой слот не существует (422)
func rejectionStatus(rejected *createBooking.RejectedError) (int, string) {
	switch {
	case errors.Is(rejected, createBooking.ErrClosed):
		return http.StatusUnprocessableEntity, msgSalonClosed
	case errors.Is(rejected, createBooking.ErrOutsideHours):
		return http.StatusUnprocessableEntity, msgOutsideHours
	case errors.Is(rejected, createBooking.ErrInPast):
		return http.StatusUnprocessableEntity, msgInPast
	default:
		return http.StatusConflict, msgSlotNotAvailable
	}
}
