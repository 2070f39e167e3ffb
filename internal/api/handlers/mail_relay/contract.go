package mail_relay

import (
	"context"

	"github.com/m04kA/salon-booking-service/internal/integrations/mailer"
)

type Sender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
