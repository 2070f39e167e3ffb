package availability

import (
	"fmt"
	"sort"

	"github.com/m04kA/salon-booking-service/internal/domain"
)

// ObstacleKind источник занятого интервала
type ObstacleKind string

const (
	// KindBooking активное бронирование (pending/confirmed)
	KindBooking ObstacleKind = "booking"
	// KindCompleted завершенное бронирование, показывается справочно, но занимает слот так же
	KindCompleted ObstacleKind = "completed"
	// KindBlocked блокировка времени администратором
	KindBlocked ObstacleKind = "blocked"
)

// Obstacle занятый интервал дня
type Obstacle struct {
	Kind     ObstacleKind
	Interval domain.TimeInterval

	BookingID   int64
	ServiceName string

	BlockID int64
	Reason  string
}

// BuildObstacles собирает занятые интервалы дня для услуги serviceID
// Отмененные бронирования отсекаются запросом к БД; здесь они пропускаются повторно
// на случай, если вызывающий передал неотфильтрованный список.
// Блокировка с ServiceID другой услуги не мешает.
func BuildObstacles(bookings []*domain.Booking, blocks []*domain.BlockedSlot, serviceID int64) ([]Obstacle, error) {
	obstacles := make([]Obstacle, 0, len(bookings)+len(blocks))

	for _, b := range bookings {
		if !b.IsObstacle() {
			continue
		}

		interval, err := b.Interval()
		if err != nil {
			return nil, fmt.Errorf("booking id=%d: %w", b.ID, err)
		}

		kind := KindBooking
		if b.Status == domain.StatusCompleted {
			kind = KindCompleted
		}

		obstacles = append(obstacles, Obstacle{
			Kind:        kind,
			Interval:    interval,
			BookingID:   b.ID,
			ServiceName: b.ServiceName,
		})
	}

	for _, block := range blocks {
		if serviceID != 0 && !block.AppliesTo(serviceID) {
			continue
		}

		interval := block.Interval()
		if err := interval.Validate(); err != nil {
			return nil, fmt.Errorf("blocked slot id=%d: %w", block.ID, err)
		}

		obstacles = append(obstacles, Obstacle{
			Kind:     KindBlocked,
			Interval: interval,
			BlockID:  block.ID,
			Reason:   block.Reason,
		})
	}

	sort.SliceStable(obstacles, func(i, j int) bool {
		return obstacles[i].Interval.Start.IsBefore(obstacles[j].Interval.Start)
	})

	return obstacles, nil
}
