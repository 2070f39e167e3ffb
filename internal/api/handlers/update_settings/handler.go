package update_settings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
	"github.com/m04kA/salon-booking-service/internal/api/handlers/get_settings"
	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/internal/service/settings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSettings    = "некорректные настройки"
	msgUnknownSection     = "неизвестный раздел настроек"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/settings/{section}
// Раздел перезаписывается целиком; кэш настроек сбрасывается сервисом
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	section := domain.SettingsSection(mux.Vars(r)["section"])

	var (
		updated *domain.SiteSettings
		err     error
	)

	switch section {
	case domain.SectionContact:
		var req domain.ContactInfo
		if !h.decode(w, r, section, &req) {
			return
		}
		updated, err = h.service.UpdateContact(r.Context(), req)

	case domain.SectionBranding:
		var req domain.Branding
		if !h.decode(w, r, section, &req) {
			return
		}
		updated, err = h.service.UpdateBranding(r.Context(), req)

	case domain.SectionEmail:
		var req domain.EmailSettings
		if !h.decode(w, r, section, &req) {
			return
		}
		updated, err = h.service.UpdateEmail(r.Context(), req)

	case domain.SectionHours:
		var req []handlers.DayHours
		if !h.decode(w, r, section, &req) {
			return
		}
		hours, convErr := handlers.ToWeeklyHours(req)
		if convErr != nil {
			h.logger.Warn("PUT /admin/settings/hours - Invalid hours: %v", convErr)
			handlers.RespondBadRequest(w, msgInvalidSettings+": "+convErr.Error())
			return
		}
		updated, err = h.service.UpdateHours(r.Context(), hours)

	default:
		h.logger.Warn("PUT /admin/settings/{section} - Unknown section: %q", section)
		handlers.RespondNotFound(w, msgUnknownSection)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PUT /admin/settings/%s - Invalid settings: %v", section, err)
			handlers.RespondBadRequest(w, msgInvalidSettings)

		default:
			h.logger.Error("PUT /admin/settings/%s - Failed to save settings: %v", section, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	value, _ := get_settings.FromDomainAdmin(updated).Section(section)

	h.logger.Info("PUT /admin/settings/%s - Settings updated successfully", section)
	handlers.RespondJSON(w, http.StatusOK, value)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, section domain.SettingsSection, dst interface{}) bool {
	if err := handlers.DecodeJSON(r, dst); err != nil {
		h.logger.Warn("PUT /admin/settings/%s - Invalid request body: %v", section, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return false
	}
	return true
}
