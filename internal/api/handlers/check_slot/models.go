package check_slot

import (
	"time"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
	"github.com/m04kA/salon-booking-service/internal/domain"
	checkSlot "github.com/m04kA/salon-booking-service/internal/usecase/check_slot"
	"github.com/m04kA/salon-booking-service/pkg/types"
)

// CheckSlotResponse HTTP response model
// Недоступный слот возвращается с 200: available=false и reason
type CheckSlotResponse struct {
	Date        string                      `json:"date"`
	ServiceID   int64                       `json:"serviceId"`
	ServiceName string                      `json:"serviceName"`
	StartTime   string                      `json:"startTime"`
	EndTime     string                      `json:"endTime,omitempty"`
	Available   bool                        `json:"available"`
	Reason      string                      `json:"reason,omitempty"`
	Message     string                      `json:"message"`
	Hours       handlers.WindowResponse     `json:"hours"`
	Conflicts   []handlers.ObstacleResponse `json:"conflicts"`
}

// ToUseCaseRequest конвертирует query параметры в модель use case
func ToUseCaseRequest(serviceID int64, dateStr, startTimeStr string) (*checkSlot.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(startTimeStr)
	if err != nil {
		return nil, err
	}

	return &checkSlot.Request{
		ServiceID: serviceID,
		Date:      date,
		StartTime: startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkSlot.Response) *CheckSlotResponse {
	return &CheckSlotResponse{
		Date:        resp.Date.Format(domain.DateFormat),
		ServiceID:   resp.ServiceID,
		ServiceName: resp.ServiceName,
		StartTime:   resp.StartTime.String(),
		EndTime:     resp.EndTime.String(),
		Available:   resp.Bookable,
		Reason:      string(resp.Reason),
		Message:     resp.Reason.Message(),
		Hours:       handlers.FromWindow(resp.Window),
		Conflicts:   handlers.FromObstacles(resp.Conflicts),
	}
}
