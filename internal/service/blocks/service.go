package blocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/salon-booking-service/internal/availability"
	"github.com/m04kA/salon-booking-service/internal/domain"
	blockedSlotRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/blockedslot"
	"github.com/m04kA/salon-booking-service/internal/service/blocks/models"
	"github.com/m04kA/salon-booking-service/pkg/types"
)

// maxListRangeDays ограничение периода выборки блокировок
const maxListRangeDays = 93

// Service сервис блокировок времени
type Service struct {
	blockRepo    BlockedSlotRepository
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(
	blockRepo BlockedSlotRepository,
	bookingRepo BookingRepository,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		blockRepo:    blockRepo,
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Create блокирует интервал и возвращает бронирования, которые он перекрывает
// Существующие бронирования не отменяются: блокировка действует только на новые
func (s *Service) Create(ctx context.Context, req *models.CreateBlockRequest) (*models.CreateBlockResponse, error) {
	s.logger.Info("CreateBlock: date=%s, %s-%s, service=%v", req.Date, req.StartTime, req.EndTime, req.ServiceID)

	// 1. Валидация
	slot, err := s.parseRequest(req)
	if err != nil {
		s.logger.Warn("CreateBlock: validation failed: %v", err)
		return nil, err
	}

	// 2. Сохраняем блокировку
	created, err := s.blockRepo.Create(ctx, slot)
	if err != nil {
		if errors.Is(err, blockedSlotRepo.ErrServiceNotFound) {
			s.logger.Warn("CreateBlock: service id=%v not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("CreateBlock: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	// 3. Ищем пересекающиеся бронирования
	overlapping := make([]models.OverlappingBooking, 0)
	bookings, err := s.bookingRepo.GetObstaclesByDate(ctx, created.Date)
	if err != nil {
		s.logger.Warn("CreateBlock: block id=%d saved, but failed to load bookings: %v", created.ID, err)
	} else {
		for _, b := range bookings {
			if !created.AppliesTo(b.ServiceID) {
				continue
			}
			interval, err := b.Interval()
			if err != nil {
				continue
			}
			if availability.Overlaps(created.Interval(), interval) {
				overlapping = append(overlapping, models.OverlappingBooking{
					ID:           b.ID,
					CustomerName: b.CustomerName,
					ServiceName:  b.ServiceName,
					StartTime:    interval.Start.String(),
					EndTime:      interval.End.String(),
					Status:       string(b.Status),
				})
			}
		}
	}

	s.logger.Info("CreateBlock: created block id=%d, overlapping bookings=%d", created.ID, len(overlapping))
	return &models.CreateBlockResponse{
		Block:               *models.FromDomainBlock(created),
		OverlappingBookings: overlapping,
	}, nil
}

// List возвращает блокировки за период включительно
func (s *Service) List(ctx context.Context, from, to time.Time) (*models.BlockListResponse, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: to is before from", ErrInvalidInput)
	}
	if to.Sub(from) > maxListRangeDays*24*time.Hour {
		return nil, fmt.Errorf("%w: range must not exceed %d days", ErrInvalidInput, maxListRangeDays)
	}

	blocks, err := s.blockRepo.GetByRange(ctx, from, to)
	if err != nil {
		s.logger.Error("ListBlocks: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlockList(blocks), nil
}

// Get возвращает блокировку по ID
func (s *Service) Get(ctx context.Context, id int64) (*models.BlockResponse, error) {
	block, err := s.blockRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, blockedSlotRepo.ErrBlockedSlotNotFound) {
			return nil, ErrBlockNotFound
		}
		s.logger.Error("GetBlock: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainBlock(block), nil
}

// Delete снимает блокировку
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.blockRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, blockedSlotRepo.ErrBlockedSlotNotFound) {
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteBlock: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}
	s.logger.Info("DeleteBlock: deleted block id=%d", id)
	return nil
}

func (s *Service) parseRequest(req *models.CreateBlockRequest) (*domain.BlockedSlot, error) {
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	today := domain.DateOnly(s.timeProvider.Now().In(s.location))
	if date.Before(time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)) {
		return nil, fmt.Errorf("%w: date is in the past", ErrInvalidInput)
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime", ErrInvalidInput)
	}
	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endTime", ErrInvalidInput)
	}
	if err := (domain.TimeInterval{Start: start, End: end}).Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	reason := strings.TrimSpace(req.Reason)
	if len(reason) > domain.MaxBlockReasonLength {
		return nil, fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}
	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	return &domain.BlockedSlot{
		Date:      date,
		StartTime: start,
		EndTime:   end,
		ServiceID: req.ServiceID,
		Reason:    reason,
	}, nil
}
