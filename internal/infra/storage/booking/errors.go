package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrNotCancellable возвращается, когда статус бронирования уже не допускает отмены
	ErrNotCancellable = errors.New("booking.repository: booking is not cancellable")

	// ErrSlotNotAvailable возвращается, когда БД отклонила пересекающееся бронирование
	ErrSlotNotAvailable = errors.New("booking.repository: slot not available")

	// ErrSerializationFailure возвращается, когда параллельная транзакция помешала записи
	ErrSerializationFailure = errors.New("booking.repository: serialization failure")

	// ErrServiceNotFound возвращается при ссылке на несуществующую услугу
	ErrServiceNotFound = errors.New("booking.repository: service not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
