package get_available_slots

import (
	"time"

	"github.com/m04kA/salon-booking-service/internal/availability"
	"github.com/m04kA/salon-booking-service/internal/domain"
)

// Config параметры расписания салона
type Config struct {
	Location        *time.Location // Таймзона салона
	SlotStepMinutes int            // Шаг сетки времен начала
	MaxAdvanceDays  int            // 0 = без ограничения
}

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID int64     // ID услуги
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов дня
type Response struct {
	Date            time.Time
	ServiceID       int64
	ServiceName     string
	DurationMinutes int
	Window          domain.OperatingWindow    // Часы работы в этот день
	Obstacles       []availability.Obstacle   // Занятые интервалы дня
	Slots           []availability.SlotStatus // Все времена начала с решением по каждому
}
