package check_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
	checkSlot "github.com/m04kA/salon-booking-service/internal/usecase/check_slot"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
	msgMissingParams    = "дата и время начала обязательны"
	msgInvalidParams    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgPastDate         = "дата в прошлом"
	msgDateTooFar       = "дата слишком далеко в будущем"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase CheckSlotUseCase
	logger  Logger
}

func NewHandler(useCase CheckSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/check
// Query params: serviceId, date (YYYY-MM-DD), startTime (HH:MM)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := handlers.QueryID(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /availability/check - Invalid service ID: %q", r.URL.Query().Get("serviceId"))
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	startTimeStr := r.URL.Query().Get("startTime")
	if dateStr == "" || startTimeStr == "" {
		h.logger.Warn("GET /availability/check - Missing date or start time: service_id=%d", serviceID)
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	useCaseReq, err := ToUseCaseRequest(serviceID, dateStr, startTimeStr)
	if err != nil {
		h.logger.Warn("GET /availability/check - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkSlot.ErrServiceNotFound):
			h.logger.Warn("GET /availability/check - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, checkSlot.ErrInvalidDate):
			h.logger.Warn("GET /availability/check - Past date: service_id=%d, date=%s", serviceID, dateStr)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, checkSlot.ErrDateTooFarInFuture):
			h.logger.Warn("GET /availability/check - Date too far in future: service_id=%d, date=%s", serviceID, dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, checkSlot.ErrInvalidInput):
			h.logger.Warn("GET /availability/check - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /availability/check - Failed to check slot: service_id=%d, date=%s, start=%s, error=%v",
				serviceID, dateStr, startTimeStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/check - Slot checked: service_id=%d, date=%s, start=%s, available=%t, reason=%s",
		serviceID, dateStr, startTimeStr, result.Bookable, result.Reason)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
