package get_settings

import (
	"time"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
	"github.com/m04kA/salon-booking-service/internal/domain"
)

// PublicSettingsResponse настройки для публичного сайта
// Почтовые настройки не публикуются
type PublicSettingsResponse struct {
	Contact  domain.ContactInfo  `json:"contact"`
	Branding domain.Branding     `json:"branding"`
	Hours    []handlers.DayHours `json:"hours"`
}

// AdminSettingsResponse все настройки, пароль SMTP скрыт
type AdminSettingsResponse struct {
	Contact   domain.ContactInfo   `json:"contact"`
	Branding  domain.Branding      `json:"branding"`
	Email     domain.EmailSettings `json:"email"`
	Hours     []handlers.DayHours  `json:"hours"`
	UpdatedAt *time.Time           `json:"updatedAt,omitempty"`
}

// FromDomainPublic конвертирует настройки в публичный ответ
func FromDomainPublic(s *domain.SiteSettings) *PublicSettingsResponse {
	return &PublicSettingsResponse{
		Contact:  s.Contact,
		Branding: s.Branding,
		Hours:    handlers.FromWeeklyHours(s.Hours),
	}
}

// FromDomainAdmin конвертирует настройки в ответ администратору
func FromDomainAdmin(s *domain.SiteSettings) *AdminSettingsResponse {
	resp := &AdminSettingsResponse{
		Contact:  s.Contact,
		Branding: s.Branding,
		Email:    s.Email.Redacted(),
		Hours:    handlers.FromWeeklyHours(s.Hours),
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

// Section возвращает один раздел ответа администратору
func (r *AdminSettingsResponse) Section(section domain.SettingsSection) (interface{}, bool) {
	switch section {
	case domain.SectionContact:
		return r.Contact, true
	case domain.SectionBranding:
		return r.Branding, true
	case domain.SectionEmail:
		return r.Email, true
	case domain.SectionHours:
		return r.Hours, true
	default:
		return nil, false
	}
}
