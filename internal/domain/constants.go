package domain

// Default opening hours used when the salon has not configured its week yet
const (
	DefaultOpenTime  = "09:00"
	DefaultCloseTime = "20:00"
)

// Business validation constants
const (
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 480 // 8 hours
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxBlockReasonLength        = 255
	MaxCustomerNameLength       = 120
	MaxCustomerPhoneLength      = 32
	MaxReportRangeDays          = 366
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ObstacleStatuses statuses of bookings that occupy their interval.
// Cancelled bookings are excluded at fetch time.
var ObstacleStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// CancellableStatuses statuses a customer may still cancel from
var CancellableStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// RevenueStatuses statuses counted as revenue in reports
var RevenueStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCompleted,
}

// AllStatuses every known booking status in lifecycle order
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}
