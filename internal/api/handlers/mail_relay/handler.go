package mail_relay

import (
	"errors"
	"net/http"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
	"github.com/m04kA/salon-booking-service/internal/integrations/mailer"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgDeliveryFailed     = "не удалось отправить письмо"
)

type Handler struct {
	sender Sender
	logger Logger
}

func NewHandler(sender Sender, logger Logger) *Handler {
	return &Handler{
		sender: sender,
		logger: logger,
	}
}

// Handle POST /api/v1/internal/mail/send
// Body: {to[], subject, html, smtp_host, smtp_port, smtp_user, smtp_password, from_email, from_name}
// Ответ: {"success": true} или {"success": false, "error": "..."}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var msg mailer.Message
	if err := handlers.DecodeJSON(r, &msg); err != nil {
		h.logger.Warn("POST /internal/mail/send - Invalid request body: %v", err)
		handlers.RespondJSON(w, http.StatusBadRequest, mailer.Response{Error: msgInvalidRequestBody})
		return
	}

	if err := h.sender.Send(r.Context(), msg); err != nil {
		switch {
		case errors.Is(err, mailer.ErrInvalidMessage), errors.Is(err, mailer.ErrNotConfigured):
			h.logger.Warn("POST /internal/mail/send - Invalid message: %v", err)
			handlers.RespondJSON(w, http.StatusBadRequest, mailer.Response{Error: err.Error()})

		default:
			h.logger.Error("POST /internal/mail/send - Delivery failed: host=%s, recipients=%d, error=%v",
				msg.SMTPHost, len(msg.To), err)
			handlers.RespondJSON(w, http.StatusBadGateway, mailer.Response{Error: msgDeliveryFailed})
		}
		return
	}

	h.logger.Info("POST /internal/mail/send - Message delivered: subject=%q, recipients=%d", msg.Subject, len(msg.To))
	handlers.RespondJSON(w, http.StatusOK, mailer.Response{Success: true})
}
