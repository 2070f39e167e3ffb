package list_bookings

import (
	"net/http"
	"strconv"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
	"github.com/m04kA/salon-booking-service/internal/service/bookings/models"
)

// maxLimit верхняя граница размера страницы
const maxLimit = 500

// ToServiceRequest собирает фильтр из query параметров
// startDate, endDate, status, serviceId, email, includeCancelled, limit
func ToServiceRequest(r *http.Request) (*models.ListBookingsRequest, error) {
	q := r.URL.Query()

	req := &models.ListBookingsRequest{
		StartDate:     handlers.QueryString(r, "startDate"),
		EndDate:       handlers.QueryString(r, "endDate"),
		Status:        handlers.QueryString(r, "status"),
		CustomerEmail: handlers.QueryString(r, "email"),
	}

	if q.Get("serviceId") != "" {
		serviceID, err := handlers.QueryID(r, "serviceId")
		if err != nil {
			return nil, err
		}
		req.ServiceID = &serviceID
	}

	if v := q.Get("includeCancelled"); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			return nil, err
		}
		req.IncludeCancelled = include
	}

	if v := q.Get("limit"); v != "" {
		limit, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, err
		}
		if limit > maxLimit {
			limit = maxLimit
		}
		req.Limit = limit
	}

	return req, nil
}
