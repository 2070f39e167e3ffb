package update_settings

import (
	"context"

	"github.com/m04kA/salon-booking-service/internal/domain"
)

type SettingsService interface {
	UpdateContact(ctx context.Context, contact domain.ContactInfo) (*domain.SiteSettings, error)
	UpdateBranding(ctx context.Context, branding domain.Branding) (*domain.SiteSettings, error)
	UpdateEmail(ctx context.Context, email domain.EmailSettings) (*domain.SiteSettings, error)
	UpdateHours(ctx context.Context, hours domain.WeeklyHours) (*domain.SiteSettings, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
