package get_available_slots

import (
	"time"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
	"github.com/m04kA/salon-booking-service/internal/domain"
	getAvailableSlots "github.com/m04kA/salon-booking-service/internal/usecase/get_available_slots"
)

// SlotResponse время начала и решение по нему
type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"` // conflict, in_past
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string                      `json:"date"`
	ServiceID       int64                       `json:"serviceId"`
	ServiceName     string                      `json:"serviceName"`
	DurationMinutes int                         `json:"durationMinutes"`
	Hours           handlers.WindowResponse     `json:"hours"`
	Slots           []SlotResponse              `json:"slots"`
	Busy            []handlers.ObstacleResponse `json:"busy"`
}

// ToUseCaseRequest конвертирует query параметры в модель use case
func ToUseCaseRequest(serviceID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ServiceID: serviceID,
		Date:      date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime: slot.Start.String(),
			EndTime:   slot.Decision.Interval.End.String(),
			Available: slot.Decision.Bookable,
			Reason:    string(slot.Decision.Reason),
		})
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ServiceID:       resp.ServiceID,
		ServiceName:     resp.ServiceName,
		DurationMinutes: resp.DurationMinutes,
		Hours:           handlers.FromWindow(resp.Window),
		Slots:           slots,
		Busy:            handlers.FromObstacles(resp.Obstacles),
	}
}
