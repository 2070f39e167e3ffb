package models

import (
	"errors"
	"time"

	"github.com/m04kA/salon-booking-service/internal/domain"
)

// ErrInvalidDate неверный формат даты периода
var ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

// ReportRequest период отчета, обе даты включительно
type ReportRequest struct {
	From string
	To   string
}

// Parse возвращает даты периода
func (r ReportRequest) Parse() (time.Time, time.Time, error) {
	from, err := time.Parse(domain.DateFormat, r.From)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	to, err := time.Parse(domain.DateFormat, r.To)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	return from, to, nil
}

// SummaryResponse сводка по бронированиям за период
type SummaryResponse struct {
	From          string         `json:"from"`
	To            string         `json:"to"`
	TotalBookings int            `json:"totalBookings"`
	ByStatus      map[string]int `json:"byStatus"`
	Revenue       float64        `json:"revenue"`
	ByService     []ServiceStats `json:"byService"`
	ByDay         []DayStats     `json:"byDay"`
}

// ServiceStats итоги по услуге
type ServiceStats struct {
	ServiceID   int64   `json:"serviceId"`
	ServiceName string  `json:"serviceName"`
	Bookings    int     `json:"bookings"`
	Revenue     float64 `json:"revenue"`
}

// DayStats итоги по дню
type DayStats struct {
	Date      string  `json:"date"`
	Bookings  int     `json:"bookings"`
	Cancelled int     `json:"cancelled"`
	Revenue   float64 `json:"revenue"`
}

// FromDomainReport конвертирует domain модель в DTO
func FromDomainReport(r *domain.BookingReport) *SummaryResponse {
	resp := &SummaryResponse{
		From:          r.From.Format(domain.DateFormat),
		To:            r.To.Format(domain.DateFormat),
		TotalBookings: r.TotalBookings,
		ByStatus:      make(map[string]int, len(r.ByStatus)),
		Revenue:       r.Revenue,
		ByService:     make([]ServiceStats, 0, len(r.ByService)),
		ByDay:         make([]DayStats, 0, len(r.ByDay)),
	}

	for status, n := range r.ByStatus {
		resp.ByStatus[string(status)] = n
	}
	for _, s := range r.ByService {
		resp.ByService = append(resp.ByService, ServiceStats{
			ServiceID:   s.ServiceID,
			ServiceName: s.ServiceName,
			Bookings:    s.Bookings,
			Revenue:     s.Revenue,
		})
	}
	for _, d := range r.ByDay {
		resp.ByDay = append(resp.ByDay, DayStats{
			Date:      d.Date.Format(domain.DateFormat),
			Bookings:  d.Bookings,
			Cancelled: d.Cancelled,
			Revenue:   d.Revenue,
		})
	}

	return resp
}
