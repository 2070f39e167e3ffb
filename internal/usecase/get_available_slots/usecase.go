package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/salon-booking-service/internal/availability"
	catalogRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/catalog"
	"github.com/m04kA/salon-booking-service/pkg/types"
)

// UseCase use case для получения слотов дня (первая фаза проверки, для отображения)
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

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s", req.ServiceID, formatDate(req.Date))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в таймзоне салона
	now := uc.timeProvider.Now().In(uc.config.Location)
	today := civilDate(now)

	// 3. Валидация даты
	if err := validateDate(req.Date, today, uc.config.MaxAdvanceDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем услугу
	service, err := uc.serviceRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsBookable() {
		uc.logger.Warn("GetAvailableSlots: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 5. Получаем часы работы на указанную дату
	hours, err := uc.hours.GetHours(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get opening hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get opening hours: %v", ErrInternal, err)
	}
	window := hours.For(req.Date)

	response := &Response{
		Date:            req.Date,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		DurationMinutes: service.DurationMinutes,
		Window:          window,
		Obstacles:       []availability.Obstacle{},
		Slots:           []availability.SlotStatus{},
	}

	if window.Closed {
		uc.logger.Info("GetAvailableSlots: salon is closed on %s", formatDate(req.Date))
		return response, nil
	}

	// 6. Получаем занятые интервалы дня: бронирования (без отмененных) и блокировки
	bookings, err := uc.bookingRepo.GetObstaclesByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	blocks, err := uc.blockRepo.GetByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked slots: %v", ErrInternal, err)
	}

	obstacles, err := availability.BuildObstacles(bookings, blocks, service.ID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build obstacles: %v", err)
		return nil, fmt.Errorf("%w: failed to build obstacles: %v", ErrInternal, err)
	}

	// 7. Сегодня времена начала, которые уже прошли, недоступны
	var notBefore *types.TimeString
	if civilDate(req.Date).Equal(today) {
		current := types.NewTimeString(now)
		notBefore = &current
	}

	// 8. Строим сетку времен начала
	slots, err := availability.Timeline(window, service.DurationMinutes, uc.config.SlotStepMinutes, obstacles, notBefore)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build timeline: %v", err)
		return nil, fmt.Errorf("%w: failed to build timeline: %v", ErrInternal, err)
	}

	response.Obstacles = obstacles
	response.Slots = slots

	uc.logger.Info("GetAvailableSlots: %d starts (%d bookable) for service=%d, date=%s",
		len(slots), len(availability.BookableStarts(slots)), req.ServiceID, formatDate(req.Date))

	return response, nil
}
