package check_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/salon-booking-service/internal/availability"
	"github.com/m04kA/salon-booking-service/internal/domain"
	catalogRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/catalog"
	"github.com/m04kA/salon-booking-service/pkg/types"
)

// UseCase проверка одного времени начала без записи
// Результат информационный: окончательная проверка выполняется при создании бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	blockRepo    BlockedSlotRepository
	serviceRepo  ServiceRepository
	hours        HoursProvider
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
	config Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		blockRepo:    blockRepo,
		serviceRepo:  serviceRepo,
		hours:        hours,
		config:       config,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет проверку слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckSlot: service=%d, date=%s, time=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckSlot: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now().In(uc.config.Location)
	today := civilDate(now)

	if err := validateDate(req.Date, today, uc.config.MaxAdvanceDays); err != nil {
		uc.logger.Warn("CheckSlot: date validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу
	service, err := uc.serviceRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CheckSlot: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsBookable() {
		return nil, ErrServiceNotFound
	}

	// 3. Часы работы
	hours, err := uc.hours.GetHours(ctx)
	if err != nil {
		uc.logger.Error("CheckSlot: failed to get opening hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get opening hours: %v", ErrInternal, err)
	}
	window := hours.For(req.Date)

	// 4. Занятые интервалы дня
	bookings, err := uc.bookingRepo.GetObstaclesByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("CheckSlot: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}
	blocks, err := uc.blockRepo.GetByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("CheckSlot: failed to get blocked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked slots: %v", ErrInternal, err)
	}
	obstacles, err := availability.BuildObstacles(bookings, blocks, service.ID)
	if err != nil {
		uc.logger.Error("CheckSlot: failed to build obstacles: %v", err)
		return nil, fmt.Errorf("%w: failed to build obstacles: %v", ErrInternal, err)
	}

	// 5. Решение
	decision, err := availability.Check(window, availability.Candidate{
		Start:           req.StartTime,
		DurationMinutes: service.DurationMinutes,
	}, obstacles)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if decision.Bookable && civilDate(req.Date).Equal(today) && req.StartTime.IsBefore(types.NewTimeString(now)) {
		decision.Bookable = false
		decision.Reason = availability.ReasonInPast
	}

	response := &Response{
		Date:        req.Date,
		ServiceID:   service.ID,
		ServiceName: service.Name,
		StartTime:   req.StartTime,
		EndTime:     decision.Interval.End,
		Window:      window,
		Bookable:    decision.Bookable,
		Reason:      decision.Reason,
		Conflicts:   decision.Conflicts,
	}
	if response.Conflicts == nil {
		response.Conflicts = []availability.Obstacle{}
	}

	uc.logger.Info("CheckSlot: service=%d, %s %s bookable=%t reason=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, decision.Bookable, decision.Reason)

	return response, nil
}
