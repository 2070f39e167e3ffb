package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/pkg/types"
)

// ErrInvalidCandidate некорректное время начала или длительность
var ErrInvalidCandidate = errors.New("availability: invalid candidate")

// Reason причина, по которой слот нельзя забронировать
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonClosed       Reason = "closed"
	ReasonOutsideHours Reason = "outside_operating_hours"
	ReasonConflict     Reason = "conflict"
	ReasonInPast       Reason = "in_past"
)

// Message человекочитаемое описание причины
func (r Reason) Message() string {
	switch r {
	case ReasonNone:
		return "slot is available"
	case ReasonClosed:
		return "the salon is closed on this day"
	case ReasonOutsideHours:
		return "outside operating hours"
	case ReasonConflict:
		return "overlaps an existing obligation"
	case ReasonInPast:
		return "start time has already passed"
	default:
		return string(r)
	}
}

// Candidate проверяемый слот
type Candidate struct {
	Start           types.TimeString
	DurationMinutes int
}

// Decision результат проверки слота
type Decision struct {
	Bookable  bool
	Reason    Reason
	Interval  domain.TimeInterval
	Conflicts []Obstacle
}

// Overlaps проверка пересечения полуоткрытых интервалов [a.Start, a.End) и [b.Start, b.End)
// Интервалы, стыкующиеся границами, не пересекаются.
func Overlaps(a, b domain.TimeInterval) bool {
	return a.Start.Minutes() < b.End.Minutes() && a.End.Minutes() > b.Start.Minutes()
}

// Check решает, можно ли забронировать candidate в окне работы window при занятых obstacles
// Выход за часы работы отклоняется независимо от obstacles.
// Все виды препятствий равнозначны: достаточно одного пересечения.
// Функция чистая, повторный вызов на тех же данных дает тот же результат.
func Check(window domain.OperatingWindow, candidate Candidate, obstacles []Obstacle) (Decision, error) {
	if err := candidate.Start.Validate(); err != nil {
		return Decision{}, fmt.Errorf("%w: start: %v", ErrInvalidCandidate, err)
	}
	if candidate.DurationMinutes <= 0 {
		return Decision{}, fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidCandidate, candidate.DurationMinutes)
	}

	if window.Closed {
		return Decision{Reason: ReasonClosed}, nil
	}

	end, err := candidate.Start.AddMinutes(candidate.DurationMinutes)
	if err != nil {
		// конец за пределами суток заведомо позже закрытия
		return Decision{Reason: ReasonOutsideHours}, nil
	}
	interval := domain.TimeInterval{Start: candidate.Start, End: end}

	if !window.Fits(interval) {
		return Decision{Reason: ReasonOutsideHours, Interval: interval}, nil
	}

	var conflicts []Obstacle
	for _, o := range obstacles {
		if Overlaps(interval, o.Interval) {
			conflicts = append(conflicts, o)
		}
	}

	if len(conflicts) > 0 {
		return Decision{Reason: ReasonConflict, Interval: interval, Conflicts: conflicts}, nil
	}

	return Decision{Bookable: true, Interval: interval}, nil
}
