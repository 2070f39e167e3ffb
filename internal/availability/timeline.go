package availability

import (
	"fmt"

	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/pkg/types"
)

// SlotStatus стартовое время дня и решение по нему
type SlotStatus struct {
	Start    types.TimeString
	Decision Decision
}

// Timeline перебирает времена начала от открытия с шагом stepMinutes,
// пока услуга длительностью durationMinutes помещается до закрытия.
// Времена раньше notBefore (сегодняшнее прошлое) помечаются ReasonInPast.
func Timeline(
	window domain.OperatingWindow,
	durationMinutes int,
	stepMinutes int,
	obstacles []Obstacle,
	notBefore *types.TimeString,
) ([]SlotStatus, error) {
	if stepMinutes <= 0 {
		return nil, fmt.Errorf("%w: step must be positive, got %d", ErrInvalidCandidate, stepMinutes)
	}
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidCandidate, durationMinutes)
	}

	if window.Closed {
		return []SlotStatus{}, nil
	}

	open := window.Open.Minutes()
	closeAt := window.Close.Minutes()
	if open < 0 || closeAt < 0 || open >= closeAt {
		return nil, fmt.Errorf("invalid operating window %s-%s", window.Open, window.Close)
	}

	slots := make([]SlotStatus, 0, (closeAt-open)/stepMinutes+1)
	for minute := open; minute+durationMinutes <= closeAt; minute += stepMinutes {
		start, err := types.NewTimeStringFromMinutes(minute)
		if err != nil {
			return nil, err
		}

		decision, err := Check(window, Candidate{Start: start, DurationMinutes: durationMinutes}, obstacles)
		if err != nil {
			return nil, err
		}

		if notBefore != nil && start.IsBefore(*notBefore) {
			decision.Bookable = false
			decision.Reason = ReasonInPast
		}

		slots = append(slots, SlotStatus{Start: start, Decision: decision})
	}

	return slots, nil
}

// BookableStarts оставляет только свободные времена начала
func BookableStarts(slots []SlotStatus) []types.TimeString {
	starts := make([]types.TimeString, 0, len(slots))
	for _, s := range slots {
		if s.Decision.Bookable {
			starts = append(starts, s.Start)
		}
	}
	return starts
}
