package settings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m04kA/salon-booking-service/internal/domain"
)

// Service единая точка загрузки и изменения настроек сайта
// Все потребители (доступность, уведомления, публичные страницы) читают настройки только через Get
type Service struct {
	repo   Repository
	cache  Cache
	logger Logger
}

// NewService создает сервис настроек; cache может быть nil
func NewService(repo Repository, cache Cache, logger Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

// Get возвращает все настройки
// Разделы, которые еще не сохранялись, заполняются значениями по умолчанию
func (s *Service) Get(ctx context.Context) (*domain.SiteSettings, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err == nil {
			return cached, nil
		}
		s.logger.Info("Settings: cache miss: %v", err)
	}

	sections, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("Settings: failed to load settings: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	result := domain.DefaultSiteSettings()
	for _, section := range sections {
		if err := decodeSection(&result, section.Name, section.Value); err != nil {
			s.logger.Error("Settings: section %s is corrupted, using defaults: %v", section.Name, err)
			continue
		}
		if section.UpdatedAt.After(result.UpdatedAt) {
			result.UpdatedAt = section.UpdatedAt
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, &result); err != nil {
			s.logger.Warn("Settings: failed to cache settings: %v", err)
		}
	}

	return &result, nil
}

// GetHours возвращает расписание работы салона
func (s *Service) GetHours(ctx context.Context) (domain.WeeklyHours, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return domain.WeeklyHours{}, err
	}
	return settings.Hours, nil
}

// UpdateContact сохраняет контактные данные
func (s *Service) UpdateContact(ctx context.Context, contact domain.ContactInfo) (*domain.SiteSettings, error) {
	if err := validateContact(contact); err != nil {
		return nil, err
	}
	return s.save(ctx, domain.SectionContact, contact)
}

// UpdateBranding сохраняет оформление
func (s *Service) UpdateBranding(ctx context.Context, branding domain.Branding) (*domain.SiteSettings, error) {
	if err := validateBranding(branding); err != nil {
		return nil, err
	}
	if branding.GalleryURLs == nil {
		branding.GalleryURLs = []string{}
	}
	return s.save(ctx, domain.SectionBranding, branding)
}

// UpdateEmail сохраняет настройки почтовых уведомлений
// Пароль, равный domain.RedactedSecret, означает "оставить сохраненный"
func (s *Service) UpdateEmail(ctx context.Context, email domain.EmailSettings) (*domain.SiteSettings, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if email.SMTPPassword == domain.RedactedSecret {
		current, err := s.Get(ctx)
		if err != nil {
			return nil, err
		}
		email.SMTPPassword = current.Email.SMTPPassword
	}
	if email.AdminRecipients == nil {
		email.AdminRecipients = []string{}
	}
	return s.save(ctx, domain.SectionEmail, email)
}

// UpdateHours сохраняет недельное расписание
func (s *Service) UpdateHours(ctx context.Context, hours domain.WeeklyHours) (*domain.SiteSettings, error) {
	if err := validateHours(hours); err != nil {
		return nil, err
	}
	return s.save(ctx, domain.SectionHours, hours)
}

func (s *Service) save(ctx context.Context, section domain.SettingsSection, value interface{}) (*domain.SiteSettings, error) {
	s.logger.Info("Settings: updating section %s", section)

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: encode %s: %v", ErrInternal, section, err)
	}

	if _, err := s.repo.Upsert(ctx, section, raw); err != nil {
		s.logger.Error("Settings: failed to save section %s: %v", section, err)
		return nil, fmt.Errorf("%w: save %s - repository error: %v", ErrInternal, section, err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Error("Settings: failed to invalidate cache after %s update: %v", section, err)
		}
	}

	return s.Get(ctx)
}

func decodeSection(dst *domain.SiteSettings, name domain.SettingsSection, raw json.RawMessage) error {
	switch name {
	case domain.SectionContact:
		return json.Unmarshal(raw, &dst.Contact)
	case domain.SectionBranding:
		return json.Unmarshal(raw, &dst.Branding)
	case domain.SectionEmail:
		return json.Unmarshal(raw, &dst.Email)
	case domain.SectionHours:
		var hours domain.WeeklyHours
		if err := json.Unmarshal(raw, &hours); err != nil {
			return err
		}
		if err := hours.Validate(); err != nil {
			return err
		}
		dst.Hours = hours
		return nil
	default:
		return fmt.Errorf("unknown section %q", name)
	}
}
