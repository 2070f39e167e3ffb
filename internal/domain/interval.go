package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/salon-booking-service/pkg/types"
)

// ErrInvalidInterval returned when start is not strictly before end
var ErrInvalidInterval = errors.New("domain: interval start must be before end")

// TimeInterval is a half-open time-of-day interval [Start, End)
type TimeInterval struct {
	Start types.TimeString
	End   types.TimeString
}

// NewTimeInterval builds [start, start+durationMinutes)
func NewTimeInterval(start types.TimeString, durationMinutes int) (TimeInterval, error) {
	if durationMinutes <= 0 {
		return TimeInterval{}, fmt.Errorf("%w: duration %d", ErrInvalidInterval, durationMinutes)
	}
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return TimeInterval{}, err
	}
	return TimeInterval{Start: start, End: end}, nil
}

// Validate checks both bounds and start < end
func (i TimeInterval) Validate() error {
	if err := i.Start.Validate(); err != nil {
		return err
	}
	if err := i.End.Validate(); err != nil {
		return err
	}
	if !i.Start.IsBefore(i.End) {
		return fmt.Errorf("%w: %s-%s", ErrInvalidInterval, i.Start, i.End)
	}
	return nil
}

// DurationMinutes length of the interval
func (i TimeInterval) DurationMinutes() int {
	return i.End.Minutes() - i.Start.Minutes()
}

// String formats as "HH:MM-HH:MM"
func (i TimeInterval) String() string {
	return fmt.Sprintf("%s-%s", i.Start, i.End)
}

// SameDate compares calendar dates ignoring time of day
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly truncates t to midnight in its own location
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
