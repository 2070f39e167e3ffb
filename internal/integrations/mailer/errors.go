package mailer

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMessage возвращается, если письмо не заполнено
	ErrInvalidMessage = errors.New("mailer: invalid message")

	// ErrNotConfigured возвращается, если транспорту не хватает параметров
	ErrNotConfigured = errors.New("mailer: transport not configured")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mailer: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе relay
	ErrInvalidResponse = errors.New("mailer: invalid relay response")

	// ErrDeliveryFailed возвращается, когда relay или SMTP сервер отклонили письмо
	ErrDeliveryFailed = errors.New("mailer: delivery failed")
)

func errInvalid(detail string) error {
	return fmt.Errorf("%w: %s", ErrInvalidMessage, detail)
}
