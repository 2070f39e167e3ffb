package reports

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
	"github.com/m04kA/salon-booking-service/internal/service/reports"
	"github.com/m04kA/salon-booking-service/internal/service/reports/models"
)

const (
	msgMissingRange = "параметры from и to обязательны"
	msgInvalidRange = "некорректный период отчета"
)

type Handler struct {
	service ReportService
	logger  Logger
}

func NewHandler(service ReportService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleSummary GET /api/v1/admin/reports/summary?from=&to=
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseRequest(w, r, "GET /admin/reports/summary")
	if !ok {
		return
	}

	result, err := h.service.Summary(r.Context(), req)
	if err != nil {
		h.respondError(w, "GET /admin/reports/summary", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleCSV GET /api/v1/admin/reports/bookings.csv?from=&to=
// Файл собирается целиком в памяти, чтобы ошибка не оборвала уже начатый ответ
func (h *Handler) HandleCSV(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseRequest(w, r, "GET /admin/reports/bookings.csv")
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.service.ExportCSV(r.Context(), req, &buf); err != nil {
		h.respondError(w, "GET /admin/reports/bookings.csv", err)
		return
	}

	filename := fmt.Sprintf("bookings_%s_%s.csv", req.From, req.To)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("GET /admin/reports/bookings.csv - Failed to write response: %v", err)
	}
}

func (h *Handler) parseRequest(w http.ResponseWriter, r *http.Request, route string) (models.ReportRequest, bool) {
	req := models.ReportRequest{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}
	if req.From == "" || req.To == "" {
		h.logger.Warn("%s - Missing range", route)
		handlers.RespondBadRequest(w, msgMissingRange)
		return req, false
	}
	return req, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, reports.ErrInvalidInput):
		h.logger.Warn("%s - Invalid range: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRange)

	default:
		h.logger.Error("%s - Failed to build report: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
