package settings

import (
	"context"
	"encoding/json"
	"time"

	"github.com/m04kA/salon-booking-service/internal/domain"
	settingsRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/settings"
)

// Repository интерфейс репозитория настроек
type Repository interface {
	GetAll(ctx context.Context) ([]*settingsRepo.Section, error)
	Upsert(ctx context.Context, section domain.SettingsSection, value json.RawMessage) (time.Time, error)
}

// Cache кэш собранных настроек
type Cache interface {
	Get(ctx context.Context) (*domain.SiteSettings, error)
	Set(ctx context.Context, s *domain.SiteSettings) error
	Invalidate(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
