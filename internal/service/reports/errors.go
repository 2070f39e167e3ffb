package reports

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном периоде отчета
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
