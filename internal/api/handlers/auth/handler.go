package auth

import (
	"errors"
	"net/http"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
	authService "github.com/m04kA/salon-booking-service/internal/service/auth"
	"github.com/m04kA/salon-booking-service/internal/service/auth/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidCredentials  = "неверный email или пароль"
	msgInvalidInput        = "некорректный email или пароль (от 8 до 72 байт)"
	msgAlreadyBootstrapped = "администратор уже создан"
)

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleBootstrap POST /api/v1/admin/bootstrap
// Одноразовое создание администратора, без авторизации
func (h *Handler) HandleBootstrap(w http.ResponseWriter, r *http.Request) {
	var req models.CredentialsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/bootstrap - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	admin, err := h.service.Bootstrap(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, authService.ErrAlreadyBootstrapped):
			h.logger.Warn("POST /admin/bootstrap - Already bootstrapped")
			handlers.RespondConflict(w, msgAlreadyBootstrapped)

		case errors.Is(err, authService.ErrInvalidInput):
			h.logger.Warn("POST /admin/bootstrap - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/bootstrap - Failed to bootstrap admin: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bootstrap - Admin created: admin_id=%d", admin.ID)
	handlers.RespondJSON(w, http.StatusCreated, admin)
}

// HandleLogin POST /api/v1/admin/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.CredentialsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	token, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, authService.ErrInvalidCredentials), errors.Is(err, authService.ErrInvalidInput):
			h.logger.Warn("POST /admin/login - Invalid credentials")
			handlers.RespondUnauthorized(w, msgInvalidCredentials)

		default:
			h.logger.Error("POST /admin/login - Failed to log in: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/login - Token issued")
	handlers.RespondJSON(w, http.StatusOK, token)
}
