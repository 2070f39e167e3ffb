package domain

import "time"

// ContactInfo контактные данные салона
type ContactInfo struct {
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Instagram string `json:"instagram"`
	WhatsApp  string `json:"whatsapp"`
}

// Branding оформление сайта и писем
type Branding struct {
	SalonName    string   `json:"salonName"`
	Tagline      string   `json:"tagline"`
	LogoURL      string   `json:"logoUrl"`
	PrimaryColor string   `json:"primaryColor"`
	AccentColor  string   `json:"accentColor"`
	GalleryURLs  []string `json:"galleryUrls"`
}

// EmailSettings настройки уведомлений по почте
type EmailSettings struct {
	Enabled         bool     `json:"enabled"`
	SMTPHost        string   `json:"smtpHost"`
	SMTPPort        int      `json:"smtpPort"`
	SMTPUser        string   `json:"smtpUser"`
	SMTPPassword    string   `json:"smtpPassword"`
	FromEmail       string   `json:"fromEmail"`
	FromName        string   `json:"fromName"`
	AdminRecipients []string `json:"adminRecipients"`
	NotifyCustomer  bool     `json:"notifyCustomer"`
	NotifyAdmin     bool     `json:"notifyAdmin"`
}

// RedactedSecret подставляется вместо SMTP пароля в ответах API
const RedactedSecret = "********"

// Redacted копия настроек со скрытым паролем
func (s EmailSettings) Redacted() EmailSettings {
	if s.SMTPPassword != "" {
		s.SMTPPassword = RedactedSecret
	}
	return s
}

// IsConfigured true, если заданы минимальные параметры отправки
func (s EmailSettings) IsConfigured() bool {
	return s.Enabled && s.SMTPHost != "" && s.SMTPPort > 0 && s.FromEmail != ""
}

// SiteSettings все настройки сайта, загружаемые одной операцией
type SiteSettings struct {
	Contact   ContactInfo   `json:"contact"`
	Branding  Branding      `json:"branding"`
	Email     EmailSettings `json:"email"`
	Hours     WeeklyHours   `json:"hours"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// DefaultSiteSettings используются, пока администратор ничего не сохранил
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		Branding: Branding{
			SalonName:    "Salon",
			PrimaryColor: "#1f2937",
			AccentColor:  "#db2777",
			GalleryURLs:  []string{},
		},
		Email: EmailSettings{
			SMTPPort:        587,
			AdminRecipients: []string{},
			NotifyCustomer:  true,
			NotifyAdmin:     true,
		},
		Hours: DefaultWeeklyHours(),
	}
}

// SettingsSection ключ раздела настроек
type SettingsSection string

const (
	SectionContact  SettingsSection = "contact"
	SectionBranding SettingsSection = "branding"
	SectionEmail    SettingsSection = "email"
	SectionHours    SettingsSection = "hours"
)
