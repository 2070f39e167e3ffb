package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/salon-booking-service/internal/availability"
	"github.com/m04kA/salon-booking-service/internal/domain"
	blockedSlotRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/blockedslot"
	bookingRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/catalog"
	"github.com/m04kA/salon-booking-service/internal/infra/storage/pgerrors"
	"github.com/m04kA/salon-booking-service/pkg/types"
)

// maxSerializationAttempts попытки записи при конфликте сериализуемых транзакций
const maxSerializationAttempts = 3

// Исходы попытки бронирования для метрик
const (
	outcomeCreated  = "created"
	outcomeRejected = "rejected"
	outcomeConflict = "conflict"
	outcomeInvalid  = "invalid"
	outcomeError    = "error"
)

// UseCase use case для создания бронирования (вторая, окончательная фаза проверки)
type UseCase struct {
	bookingRepo  BookingRepository
	blockRepo    BlockedSlotRepository
	serviceRepo  ServiceRepository
	hours        HoursProvider
	txManager    TransactionManager
	notifier     Notifier
	metrics      Metrics
	config       Config
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	blockRepo BlockedSlotRepository,
	serviceRepo ServiceRepository,
	hours HoursProvider,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	config Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		blockRepo:    blockRepo,
		serviceRepo:  serviceRepo,
		hours:        hours,
		txManager:    txManager,
		notifier:     notifier,
		metrics:      metrics,
		config:       config,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности повторяется в сериализуемой транзакции по свежим данным,
// строки дня блокируются (FOR UPDATE) до записи. Ограничение bookings_no_overlap
// в БД отклоняет пересечение, если две транзакции все же дошли до вставки.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	normalizeRequest(req)

	uc.logger.Info("CreateBooking: service=%d, date=%s, time=%s, email=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, req.CustomerEmail)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.ObserveBookingAttempt(outcomeInvalid)
		return nil, err
	}

	// 2. Получаем текущее время в таймзоне салона
	now := uc.timeProvider.Now().In(uc.config.Location)
	today := civilDate(now)

	// 3. Валидация даты
	if err := validateDate(req.Date, today, uc.config.MaxAdvanceDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		uc.metrics.ObserveBookingAttempt(outcomeInvalid)
		return nil, err
	}

	// 4. Получаем услугу
	service, err := uc.serviceRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			uc.metrics.ObserveBookingAttempt(outcomeInvalid)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		uc.metrics.ObserveBookingAttempt(outcomeError)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsBookable() {
		uc.logger.Warn("CreateBooking: service id=%d is inactive", req.ServiceID)
		uc.metrics.ObserveBookingAttempt(outcomeInvalid)
		return nil, ErrServiceNotFound
	}

	// 5. Получаем часы работы на указанную дату
	hours, err := uc.hours.GetHours(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get opening hours: %v", err)
		uc.metrics.ObserveBookingAttempt(outcomeError)
		return nil, fmt.Errorf("%w: failed to get opening hours: %v", ErrInternal, err)
	}
	window := hours.For(req.Date)

	var notBefore *types.TimeString
	if civilDate(req.Date).Equal(today) {
		current := types.NewTimeString(now)
		notBefore = &current
	}

	// 6. Повторная проверка и запись в сериализуемой транзакции
	var result *domain.Booking
	for attempt := 1; ; attempt++ {
		result, err = uc.checkAndCreate(ctx, req, service, window, notBefore)
		if err == nil || !isSerializationFailure(err) || attempt == maxSerializationAttempts {
			break
		}
		uc.logger.Warn("CreateBooking: serialization failure, retrying (attempt %d/%d)", attempt, maxSerializationAttempts)
	}

	if err != nil {
		return nil, uc.handleFailure(ctx, req, service, window, err)
	}

	uc.metrics.ObserveBookingAttempt(outcomeCreated)
	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 7. Уведомления после коммита; ошибки отправки не откатывают бронирование
	uc.notifier.BookingCreated(result)

	return toResponse(result), nil
}

// checkAndCreate одна попытка транзакции: свежие препятствия, Check, вставка
func (uc *UseCase) checkAndCreate(
	ctx context.Context,
	req *Request,
	service *domain.Service,
	window domain.OperatingWindow,
	notBefore *types.TimeString,
) (*domain.Booking, error) {
	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Получаем занятые интервалы дня с блокировкой строк (SELECT ... FOR UPDATE)
		obstacles, err := uc.loadObstacles(txCtx, req.Date, service.ID, true)
		if err != nil {
			return err
		}

		// 6.2. Проверяем доступность по свежим данным
		decision, err := availability.Check(window, availability.Candidate{
			Start:           req.StartTime,
			DurationMinutes: service.DurationMinutes,
		}, obstacles)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if decision.Bookable && notBefore != nil && req.StartTime.IsBefore(*notBefore) {
			decision.Bookable = false
			decision.Reason = availability.ReasonInPast
		}

		if !decision.Bookable {
			return &RejectedError{
				Reason:    decision.Reason,
				Conflicts: decision.Conflicts,
				Obstacles: obstacles,
			}
		}

		// 6.3. Создаем бронирование с денормализацией данных услуги
		booking := &domain.Booking{
			ServiceID:       service.ID,
			CustomerName:    req.CustomerName,
			CustomerEmail:   req.CustomerEmail,
			CustomerPhone:   req.CustomerPhone,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusConfirmed,
			ServiceName:     service.Name,
			ServicePrice:    service.Price,
			Notes:           req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrSlotNotAvailable):
				return ErrSlotNotAvailable
			case errors.Is(err, bookingRepo.ErrServiceNotFound):
				return ErrServiceNotFound
			case errors.Is(err, bookingRepo.ErrSerializationFailure):
				return err
			}
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	return result, err
}

// handleFailure переводит ошибку транзакции в ответ клиенту
// При проигранной гонке подгружает свежие препятствия, чтобы клиент увидел занятое время
func (uc *UseCase) handleFailure(
	ctx context.Context,
	req *Request,
	service *domain.Service,
	window domain.OperatingWindow,
	err error,
) error {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		uc.logger.Warn("CreateBooking: slot %s %s rejected: %s, conflicts=%d",
			req.Date.Format(domain.DateFormat), req.StartTime, rejected.Reason, len(rejected.Conflicts))
		uc.metrics.ObserveBookingAttempt(outcomeRejected)
		return rejected
	}

	if errors.Is(err, ErrSlotNotAvailable) || isSerializationFailure(err) {
		uc.logger.Warn("CreateBooking: lost race for %s %s: %v",
			req.Date.Format(domain.DateFormat), req.StartTime, err)
		uc.metrics.ObserveBookingAttempt(outcomeConflict)

		rejected = &RejectedError{Reason: availability.ReasonConflict}
		obstacles, loadErr := uc.loadObstacles(ctx, req.Date, service.ID, false)
		if loadErr != nil {
			uc.logger.Error("CreateBooking: failed to reload obstacles: %v", loadErr)
			return rejected
		}
		rejected.Obstacles = obstacles
		if decision, checkErr := availability.Check(window, availability.Candidate{
			Start:           req.StartTime,
			DurationMinutes: service.DurationMinutes,
		}, obstacles); checkErr == nil {
			rejected.Conflicts = decision.Conflicts
		}
		return rejected
	}

	if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrServiceNotFound) {
		uc.metrics.ObserveBookingAttempt(outcomeInvalid)
		return err
	}

	uc.logger.Error("CreateBooking: %v", err)
	uc.metrics.ObserveBookingAttempt(outcomeError)
	if errors.Is(err, ErrInternal) {
		return err
	}
	return fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
}

// loadObstacles бронирования (без отмененных) и блокировки дня для услуги
// forUpdate блокирует прочитанные строки до конца текущей транзакции
func (uc *UseCase) loadObstacles(ctx context.Context, date time.Time, serviceID int64, forUpdate bool) ([]availability.Obstacle, error) {
	getBookings, getBlocks := uc.bookingRepo.GetObstaclesByDate, uc.blockRepo.GetByDate
	if forUpdate {
		getBookings, getBlocks = uc.bookingRepo.GetObstaclesByDateForUpdate, uc.blockRepo.GetByDateForUpdate
	}

	bookings, err := getBookings(ctx, date)
	if err != nil {
		if isSerializationFailure(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	blocks, err := getBlocks(ctx, date)
	if err != nil {
		if isSerializationFailure(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: failed to get blocked slots: %v", ErrInternal, err)
	}

	obstacles, err := availability.BuildObstacles(bookings, blocks, serviceID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build obstacles: %v", ErrInternal, err)
	}

	return obstacles, nil
}

func isSerializationFailure(err error) bool {
	return errors.Is(err, bookingRepo.ErrSerializationFailure) ||
		errors.Is(err, blockedSlotRepo.ErrSerializationFailure) ||
		pgerrors.IsSerializationFailure(err)
}

func toResponse(b *domain.Booking) *Response {
	end, _ := b.EndTime()
	return &Response{
		ID:              b.ID,
		ServiceID:       b.ServiceID,
		BookingDate:     b.BookingDate,
		StartTime:       b.StartTime,
		EndTime:         end,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		ServiceName:     b.ServiceName,
		ServicePrice:    b.ServicePrice,
		CustomerName:    b.CustomerName,
		CustomerEmail:   b.CustomerEmail,
		CustomerPhone:   b.CustomerPhone,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
