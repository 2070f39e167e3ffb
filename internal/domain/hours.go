package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/salon-booking-service/pkg/types"
)

// Weekday closed enumeration of days, Monday first
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysInWeek size of WeeklyHours
const DaysInWeek = 7

var weekdayNames = [DaysInWeek]string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// String returns the lowercase english name ("monday")
func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// ParseWeekday accepts lowercase or capitalized english names
func ParseWeekday(s string) (Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range weekdayNames {
		if n == name {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// WeekdayOf maps time.Weekday (Sunday first) onto Weekday (Monday first)
func WeekdayOf(date time.Time) Weekday {
	return Weekday((int(date.Weekday()) + 6) % 7)
}

// OperatingWindow shop-wide open/close boundary for one day
type OperatingWindow struct {
	Open   types.TimeString `json:"open"`
	Close  types.TimeString `json:"close"`
	Closed bool             `json:"closed"`
}

// Validate checks open < close for working days
func (w OperatingWindow) Validate() error {
	if w.Closed {
		return nil
	}
	return TimeInterval{Start: w.Open, End: w.Close}.Validate()
}

// Fits returns true if the interval lies fully within the window
func (w OperatingWindow) Fits(i TimeInterval) bool {
	if w.Closed {
		return false
	}
	return !i.Start.IsBefore(w.Open) && !i.End.IsAfter(w.Close)
}

// WeeklyHours opening hours indexed by Weekday
type WeeklyHours [DaysInWeek]OperatingWindow

// DefaultWeeklyHours every day 09:00-20:00
func DefaultWeeklyHours() WeeklyHours {
	var hours WeeklyHours
	for i := range hours {
		hours[i] = OperatingWindow{
			Open:  types.TimeString(DefaultOpenTime),
			Close: types.TimeString(DefaultCloseTime),
		}
	}
	return hours
}

// For returns the window for the weekday of date
func (h WeeklyHours) For(date time.Time) OperatingWindow {
	return h[WeekdayOf(date)]
}

// Validate checks every day
func (h WeeklyHours) Validate() error {
	for i, day := range h {
		if err := day.Validate(); err != nil {
			return fmt.Errorf("%s: %w", Weekday(i), err)
		}
	}
	return nil
}
