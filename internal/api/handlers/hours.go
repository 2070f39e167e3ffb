package handlers

import (
	"fmt"

	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/pkg/types"
)

// DayHours часы работы одного дня недели
type DayHours struct {
	Day    string `json:"day"` // monday ... sunday
	Closed bool   `json:"closed"`
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
}

// FromWeeklyHours конвертирует расписание в список дней с понедельника
func FromWeeklyHours(hours domain.WeeklyHours) []DayHours {
	days := make([]DayHours, 0, len(hours))
	for i, window := range hours {
		day := DayHours{Day: domain.Weekday(i).String(), Closed: window.Closed}
		if !window.Closed {
			day.Open = window.Open.String()
			day.Close = window.Close.String()
		}
		days = append(days, day)
	}
	return days
}

// ToWeeklyHours собирает расписание из списка дней
// Каждый день недели должен встретиться ровно один раз
func ToWeeklyHours(days []DayHours) (domain.WeeklyHours, error) {
	var hours domain.WeeklyHours
	var seen [domain.DaysInWeek]bool

	for _, d := range days {
		weekday, err := domain.ParseWeekday(d.Day)
		if err != nil {
			return hours, err
		}
		if seen[weekday] {
			return hours, fmt.Errorf("duplicate day %s", weekday)
		}
		seen[weekday] = true

		if d.Closed {
			hours[weekday] = domain.OperatingWindow{Closed: true}
			continue
		}

		open, err := types.NewTimeStringFromString(d.Open)
		if err != nil {
			return hours, fmt.Errorf("%s open: %w", weekday, err)
		}
		closeAt, err := types.NewTimeStringFromString(d.Close)
		if err != nil {
			return hours, fmt.Errorf("%s close: %w", weekday, err)
		}
		hours[weekday] = domain.OperatingWindow{Open: open, Close: closeAt}
	}

	for i, ok := range seen {
		if !ok {
			return hours, fmt.Errorf("missing day %s", domain.Weekday(i))
		}
	}

	return hours, nil
}
