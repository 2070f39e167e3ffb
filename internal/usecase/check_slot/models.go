package check_slot

import (
	"time"

	"github.com/m04kA/salon-booking-service/internal/availability"
	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/pkg/types"
)

// Config параметры расписания салона
type Config struct {
	Location       *time.Location
	MaxAdvanceDays int
}

// Request проверяемый слот
type Request struct {
	ServiceID int64
	Date      time.Time
	StartTime types.TimeString
}

// Response решение по слоту
// Недоступный слот это не ошибка: Bookable=false и Reason объясняет причину
type Response struct {
	Date        time.Time
	ServiceID   int64
	ServiceName string
	StartTime   types.TimeString
	EndTime     types.TimeString // пусто, если конец выходит за сутки
	Window      domain.OperatingWindow
	Bookable    bool
	Reason      availability.Reason
	Conflicts   []availability.Obstacle
}
