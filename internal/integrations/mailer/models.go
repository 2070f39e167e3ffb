package mailer

import "strings"

// Message письмо в формате SMTP relay
// Вместе с письмом передаются SMTP параметры салона из настроек
type Message struct {
	To           []string `json:"to"`
	Subject      string   `json:"subject"`
	HTML         string   `json:"html"`
	SMTPHost     string   `json:"smtp_host"`
	SMTPPort     int      `json:"smtp_port"`
	SMTPUser     string   `json:"smtp_user"`
	SMTPPassword string   `json:"smtp_password"`
	FromEmail    string   `json:"from_email"`
	FromName     string   `json:"from_name"`
}

// Validate проверяет обязательные поля письма
func (m *Message) Validate() error {
	if len(m.To) == 0 {
		return errInvalid("no recipients")
	}
	for _, to := range m.To {
		if !strings.Contains(to, "@") {
			return errInvalid("invalid recipient " + to)
		}
	}
	if strings.TrimSpace(m.Subject) == "" {
		return errInvalid("empty subject")
	}
	if m.HTML == "" {
		return errInvalid("empty body")
	}
	if m.FromEmail == "" {
		return errInvalid("empty from_email")
	}
	return nil
}

// Redacted копия письма без пароля для логов
func (m Message) Redacted() Message {
	if m.SMTPPassword != "" {
		m.SMTPPassword = "***"
	}
	return m
}

// Response ответ relay эндпоинта
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
