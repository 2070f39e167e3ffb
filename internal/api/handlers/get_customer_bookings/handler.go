package get_customer_bookings

import (
	"net/http"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
)

const (
	msgMissingEmail = "email клиента обязателен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/customers/bookings?email=
// История клиента, включая отменённые бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	email := handlers.QueryString(r, "email")
	if email == nil {
		h.logger.Warn("GET /admin/customers/bookings - Missing email")
		handlers.RespondBadRequest(w, msgMissingEmail)
		return
	}

	result, err := h.service.ListByCustomer(r.Context(), *email)
	if err != nil {
		h.logger.Error("GET /admin/customers/bookings - Failed to get bookings: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/customers/bookings - Bookings retrieved successfully: count=%d", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
