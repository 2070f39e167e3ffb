package handlers

import (
	"github.com/m04kA/salon-booking-service/internal/availability"
	"github.com/m04kA/salon-booking-service/internal/domain"
)

// ObstacleResponse занятый интервал дня
// Для бронирований имя клиента не раскрывается: только услуга и время
type ObstacleResponse struct {
	Kind        string `json:"kind"` // booking, completed, blocked
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	BookingID   int64  `json:"bookingId,omitempty"`
	ServiceName string `json:"serviceName,omitempty"`
	BlockID     int64  `json:"blockId,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

// WindowResponse часы работы на дату
type WindowResponse struct {
	Closed bool   `json:"closed"`
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
}

// FromObstacles конвертирует занятые интервалы в DTO
func FromObstacles(obstacles []availability.Obstacle) []ObstacleResponse {
	resp := make([]ObstacleResponse, 0, len(obstacles))
	for _, o := range obstacles {
		resp = append(resp, ObstacleResponse{
			Kind:        string(o.Kind),
			StartTime:   o.Interval.Start.String(),
			EndTime:     o.Interval.End.String(),
			BookingID:   o.BookingID,
			ServiceName: o.ServiceName,
			BlockID:     o.BlockID,
			Reason:      o.Reason,
		})
	}
	return resp
}

// FromWindow конвертирует часы работы в DTO
func FromWindow(window domain.OperatingWindow) WindowResponse {
	if window.Closed {
		return WindowResponse{Closed: true}
	}
	return WindowResponse{
		Open:  window.Open.String(),
		Close: window.Close.String(),
	}
}
