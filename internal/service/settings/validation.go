package settings

import (
	"fmt"
	"net/mail"
	"regexp"

	"github.com/m04kA/salon-booking-service/internal/domain"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func validateContact(c domain.ContactInfo) error {
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return fmt.Errorf("%w: invalid contact email", ErrInvalidInput)
		}
	}
	return nil
}

func validateBranding(b domain.Branding) error {
	for name, color := range map[string]string{"primaryColor": b.PrimaryColor, "accentColor": b.AccentColor} {
		if color != "" && !hexColor.MatchString(color) {
			return fmt.Errorf("%w: %s must be a hex color", ErrInvalidInput, name)
		}
	}
	return nil
}

func validateEmail(e domain.EmailSettings) error {
	if e.SMTPPort < 0 || e.SMTPPort > 65535 {
		return fmt.Errorf("%w: smtpPort out of range", ErrInvalidInput)
	}
	if e.FromEmail != "" {
		if _, err := mail.ParseAddress(e.FromEmail); err != nil {
			return fmt.Errorf("%w: invalid fromEmail", ErrInvalidInput)
		}
	}
	for _, r := range e.AdminRecipients {
		if _, err := mail.ParseAddress(r); err != nil {
			return fmt.Errorf("%w: invalid admin recipient %q", ErrInvalidInput, r)
		}
	}
	if e.Enabled && !e.IsConfigured() {
		return fmt.Errorf("%w: smtpHost, smtpPort and fromEmail are required when email is enabled", ErrInvalidInput)
	}
	return nil
}

func validateHours(h domain.WeeklyHours) error {
	if err := h.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
