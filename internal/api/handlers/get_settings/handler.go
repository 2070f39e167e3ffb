package get_settings

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
	"github.com/m04kA/salon-booking-service/internal/domain"
)

const (
	msgUnknownSection = "неизвестный раздел настроек"
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

// HandlePublic GET /api/v1/settings/public
// Контакты, оформление и часы работы для сайта
func (h *Handler) HandlePublic(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("GET /settings/public - Failed to load settings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainPublic(settings))
}

// HandleAdmin GET /api/v1/admin/settings
func (h *Handler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/settings - Failed to load settings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainAdmin(settings))
}

// HandleSection GET /api/v1/admin/settings/{section}
// section: contact, branding, email, hours
func (h *Handler) HandleSection(w http.ResponseWriter, r *http.Request) {
	section := domain.SettingsSection(mux.Vars(r)["section"])

	settings, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/settings/{section} - Failed to load settings: section=%s, error=%v", section, err)
		handlers.RespondInternalError(w)
		return
	}

	value, ok := FromDomainAdmin(settings).Section(section)
	if !ok {
		h.logger.Warn("GET /admin/settings/{section} - Unknown section: %q", section)
		handlers.RespondNotFound(w, msgUnknownSection)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, value)
}
