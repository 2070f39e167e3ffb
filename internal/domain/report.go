package domain

import "time"

// BookingReport aggregated bookings for a date range
type BookingReport struct {
	From          time.Time
	To            time.Time
	TotalBookings int
	ByStatus      map[BookingStatus]int
	Revenue       float64
	ByService     []ServiceStats
	ByDay         []DayStats
}

// ServiceStats per-service totals
type ServiceStats struct {
	ServiceID   int64
	ServiceName string
	Bookings    int
	Revenue     float64
}

// DayStats per-day totals
type DayStats struct {
	Date      time.Time
	Bookings  int
	Cancelled int
	Revenue   float64
}
