package blocked_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/internal/service/blocks"
	"github.com/m04kA/salon-booking-service/internal/service/blocks/models"
)

const (
	msgInvalidBlockID     = "некорректный ID блокировки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBlock       = "некорректные данные блокировки"
	msgInvalidRange       = "некорректный период, ожидается from и to в формате YYYY-MM-DD"
	msgBlockNotFound      = "блокировка не найдена"
	msgServiceNotFound    = "услуга не найдена"
)

type Handler struct {
	service BlockService
	logger  Logger
}

func NewHandler(service BlockService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/admin/blocked-slots
// В ответе перечислены бронирования, которые пересекаются с блокировкой; они не отменяются
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/blocked-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/blocked-slots", 0, err)
		return
	}

	h.logger.Info("POST /admin/blocked-slots - Block created successfully: block_id=%d, date=%s, overlapping=%d",
		result.Block.ID, result.Block.Date, len(result.OverlappingBookings))
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleList GET /api/v1/admin/blocked-slots?from=&to=
// Вместо периода можно передать одну дату: ?date=
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRange(r)
	if err != nil {
		h.logger.Warn("GET /admin/blocked-slots - Invalid range: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	result, err := h.service.List(r.Context(), from, to)
	if err != nil {
		h.respondError(w, "GET /admin/blocked-slots", 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGet GET /api/v1/admin/blocked-slots/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	blockID, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("GET /admin/blocked-slots/{id} - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	result, err := h.service.Get(r.Context(), blockID)
	if err != nil {
		h.respondError(w, "GET /admin/blocked-slots/{id}", blockID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/admin/blocked-slots/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	blockID, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /admin/blocked-slots/{id} - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	if err := h.service.Delete(r.Context(), blockID); err != nil {
		h.respondError(w, "DELETE /admin/blocked-slots/{id}", blockID, err)
		return
	}

	h.logger.Info("DELETE /admin/blocked-slots/{id} - Block deleted successfully: block_id=%d", blockID)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, blockID int64, err error) {
	switch {
	case errors.Is(err, blocks.ErrBlockNotFound):
		h.logger.Warn("%s - Block not found: block_id=%d", route, blockID)
		handlers.RespondNotFound(w, msgBlockNotFound)

	case errors.Is(err, blocks.ErrServiceNotFound):
		h.logger.Warn("%s - Service not found", route)
		handlers.RespondBadRequest(w, msgServiceNotFound)

	case errors.Is(err, blocks.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBlock)

	default:
		h.logger.Error("%s - Failed: block_id=%d, error=%v", route, blockID, err)
		handlers.RespondInternalError(w)
	}
}

func parseRange(r *http.Request) (time.Time, time.Time, error) {
	q := r.URL.Query()

	if date := q.Get("date"); date != "" {
		d, err := time.Parse(domain.DateFormat, date)
		return d, d, err
	}

	from, err := time.Parse(domain.DateFormat, q.Get("from"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := time.Parse(domain.DateFormat, q.Get("to"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}
