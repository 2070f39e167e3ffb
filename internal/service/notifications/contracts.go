package notifications

import (
	"context"

	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/internal/integrations/mailer"
)

// Sender транспорт писем
type Sender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// SettingsProvider источник настроек салона (почта и оформление)
type SettingsProvider interface {
	Get(ctx context.Context) (*domain.SiteSettings, error)
}

// Metrics метрики отправки уведомлений
type Metrics interface {
	ObserveNotification(event string, ok bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
