package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/pkg/types"
)

var defaultWindow = domain.OperatingWindow{Open: "09:00", Close: "20:00"}

func interval(start, end string) domain.TimeInterval {
	return domain.TimeInterval{Start: types.MustTimeString(start), End: types.MustTimeString(end)}
}

func bookingObstacle(start, end string) Obstacle {
	return Obstacle{Kind: KindBooking, Interval: interval(start, end), BookingID: 1}
}

func check(t *testing.T, window domain.OperatingWindow, start string, duration int, obstacles ...Obstacle) Decision {
	t.Helper()
	d, err := Check(window, Candidate{Start: types.MustTimeString(start), DurationMinutes: duration}, obstacles)
	require.NoError(t, err)
	return d
}

func TestOverlaps_HalfOpen(t *testing.T) {
	tests := []struct {
		name string
		a, b domain.TimeInterval
		want bool
	}{
		{"candidate starts inside", interval("10:30", "11:30"), interval("10:00", "11:00"), true},
		{"candidate ends inside", interval("09:30", "10:30"), interval("10:00", "11:00"), true},
		{"candidate swallows obstacle", interval("09:00", "12:00"), interval("10:00", "11:00"), true},
		{"obstacle swallows candidate", interval("10:15", "10:45"), interval("10:00", "11:00"), true},
		{"identical", interval("10:00", "11:00"), interval("10:00", "11:00"), true},
		{"candidate right after", interval("11:00", "12:00"), interval("10:00", "11:00"), false},
		{"candidate right before", interval("09:00", "10:00"), interval("10:00", "11:00"), false},
		{"far apart", interval("15:00", "16:00"), interval("10:00", "11:00"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			assert.Equal(t, tt.want, Overlaps(tt.b, tt.a), "overlap must be symmetric")
		})
	}
}

// Перебор всех пар интервалов с шагом 15 минут: пересечение тогда и только тогда, когда s < b && s+d > a
func TestOverlaps_MatchesFormulaExhaustively(t *testing.T) {
	const step = 15
	for s := 0; s < 6*60; s += step {
		for d := step; d <= 3*60; d += step {
			for a := 0; a < 6*60; a += step {
				for b := a + step; b <= a+3*60; b += step {
					candidate := domain.TimeInterval{Start: minutes(t, s), End: minutes(t, s+d)}
					obstacle := domain.TimeInterval{Start: minutes(t, a), End: minutes(t, b)}

					want := s < b && s+d > a
					if got := Overlaps(candidate, obstacle); got != want {
						t.Fatalf("Overlaps(%s, %s) = %v, want %v", candidate, obstacle, got, want)
					}
				}
			}
		}
	}
}

func minutes(t *testing.T, m int) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromMinutes(m)
	require.NoError(t, err)
	return ts
}

func TestCheck_ScenarioA_StartBeforeExistingBookingConflicts(t *testing.T) {
	d := check(t, defaultWindow, "09:30", 60, bookingObstacle("10:00", "11:00"))

	assert.False(t, d.Bookable)
	assert.Equal(t, ReasonConflict, d.Reason)
	require.Len(t, d.Conflicts, 1)
	assert.Equal(t, interval("10:00", "11:00"), d.Conflicts[0].Interval)
}

func TestCheck_ScenarioB_BackToBackAccepted(t *testing.T) {
	d := check(t, defaultWindow, "11:00", 60, bookingObstacle("10:00", "11:00"))

	assert.True(t, d.Bookable)
	assert.Equal(t, ReasonNone, d.Reason)
	assert.Equal(t, interval("11:00", "12:00"), d.Interval)
}

func TestCheck_ScenarioC_OverflowPastClosingRejected(t *testing.T) {
	d := check(t, defaultWindow, "19:30", 60)

	assert.False(t, d.Bookable)
	assert.Equal(t, ReasonOutsideHours, d.Reason)
}

func TestCheck_ScenarioE_BlockedSlotWithoutBookings(t *testing.T) {
	block := &domain.BlockedSlot{ID: 3, StartTime: "12:00", EndTime: "13:00", Reason: "staff training"}
	obstacles, err := BuildObstacles(nil, []*domain.BlockedSlot{block}, 1)
	require.NoError(t, err)

	for _, start := range []string{"11:30", "12:00", "12:30"} {
		d := check(t, defaultWindow, start, 60, obstacles...)
		assert.False(t, d.Bookable, start)
		assert.Equal(t, ReasonConflict, d.Reason, start)
		require.Len(t, d.Conflicts, 1)
		assert.Equal(t, KindBlocked, d.Conflicts[0].Kind)
		assert.Equal(t, "staff training", d.Conflicts[0].Reason)
	}

	assert.True(t, check(t, defaultWindow, "11:00", 60, obstacles...).Bookable)
	assert.True(t, check(t, defaultWindow, "13:00", 60, obstacles...).Bookable)
}

func TestCheck_OutsideHoursRegardlessOfObstacles(t *testing.T) {
	cases := []struct {
		start    string
		duration int
	}{
		{"08:00", 30},
		{"08:59", 60},
		{"19:01", 60},
		{"20:00", 15},
		{"23:30", 60},
	}

	for _, c := range cases {
		withNone := check(t, defaultWindow, c.start, c.duration)
		withMany := check(t, defaultWindow, c.start, c.duration, bookingObstacle("09:00", "20:00"))

		assert.Equal(t, ReasonOutsideHours, withNone.Reason, c.start)
		assert.Equal(t, ReasonOutsideHours, withMany.Reason, c.start)
		assert.False(t, withNone.Bookable)
	}
}

func TestCheck_ExactWindowFits(t *testing.T) {
	assert.True(t, check(t, defaultWindow, "09:00", 60).Bookable)
	assert.True(t, check(t, defaultWindow, "19:00", 60).Bookable)
	assert.True(t, check(t, defaultWindow, "09:00", 660).Bookable)
}

func TestCheck_ClosedDay(t *testing.T) {
	d := check(t, domain.OperatingWindow{Closed: true}, "10:00", 60)
	assert.False(t, d.Bookable)
	assert.Equal(t, ReasonClosed, d.Reason)
}

func TestCheck_AllObstacleKindsEquallyObstructive(t *testing.T) {
	for _, kind := range []ObstacleKind{KindBooking, KindCompleted, KindBlocked} {
		o := Obstacle{Kind: kind, Interval: interval("14:00", "15:00")}
		d := check(t, defaultWindow, "14:30", 30, o)
		assert.Equal(t, ReasonConflict, d.Reason, kind)
	}
}

func TestCheck_ReportsAllConflicts(t *testing.T) {
	d := check(t, defaultWindow, "10:00", 180,
		bookingObstacle("10:00", "11:00"),
		Obstacle{Kind: KindBlocked, Interval: interval("12:00", "12:30")},
		bookingObstacle("13:00", "14:00"),
	)

	assert.Equal(t, ReasonConflict, d.Reason)
	assert.Len(t, d.Conflicts, 2)
}

func TestCheck_Idempotent(t *testing.T) {
	obstacles := []Obstacle{bookingObstacle("10:00", "11:00"), bookingObstacle("15:00", "16:00")}
	first := check(t, defaultWindow, "10:30", 45, obstacles...)
	second := check(t, defaultWindow, "10:30", 45, obstacles...)
	assert.Equal(t, first, second)
}

func TestCheck_InvalidCandidate(t *testing.T) {
	_, err := Check(defaultWindow, Candidate{Start: "25:00", DurationMinutes: 30}, nil)
	assert.ErrorIs(t, err, ErrInvalidCandidate)

	_, err = Check(defaultWindow, Candidate{Start: "10:00", DurationMinutes: 0}, nil)
	assert.ErrorIs(t, err, ErrInvalidCandidate)
}

func TestBuildObstacles(t *testing.T) {
	otherService := int64(2)
	bookings := []*domain.Booking{
		{ID: 1, StartTime: "15:00", DurationMinutes: 60, Status: domain.StatusConfirmed, ServiceName: "Haircut"},
		{ID: 2, StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusCompleted},
		{ID: 3, StartTime: "11:00", DurationMinutes: 30, Status: domain.StatusCancelled},
		{ID: 4, StartTime: "12:00", DurationMinutes: 30, Status: domain.StatusPending},
	}
	blocks := []*domain.BlockedSlot{
		{ID: 10, StartTime: "09:00", EndTime: "09:30", Reason: "cleaning"},
		{ID: 11, StartTime: "16:00", EndTime: "17:00", ServiceID: &otherService, Reason: "nail station repair"},
	}

	obstacles, err := BuildObstacles(bookings, blocks, 1)
	require.NoError(t, err)

	require.Len(t, obstacles, 4)
	assert.Equal(t, KindBlocked, obstacles[0].Kind)
	assert.Equal(t, KindCompleted, obstacles[1].Kind)
	assert.Equal(t, int64(4), obstacles[2].BookingID)
	assert.Equal(t, KindBooking, obstacles[3].Kind)
	assert.Equal(t, interval("15:00", "16:00"), obstacles[3].Interval)

	for _, o := range obstacles {
		assert.NotEqual(t, int64(3), o.BookingID, "cancelled booking must not obstruct")
	}

	// для услуги 2 блокировка ремонта применяется
	obstacles, err = BuildObstacles(bookings, blocks, otherService)
	require.NoError(t, err)
	assert.Len(t, obstacles, 5)
}

func TestBuildObstacles_InvalidBlock(t *testing.T) {
	_, err := BuildObstacles(nil, []*domain.BlockedSlot{{ID: 1, StartTime: "13:00", EndTime: "12:00"}}, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)
}

func TestTimeline(t *testing.T) {
	window := domain.OperatingWindow{Open: "09:00", Close: "12:00"}
	obstacles := []Obstacle{bookingObstacle("10:00", "11:00")}

	slots, err := Timeline(window, 60, 30, obstacles, nil)
	require.NoError(t, err)

	starts := make([]string, len(slots))
	for i, s := range slots {
		starts[i] = s.Start.String()
	}
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00"}, starts)

	assert.Equal(t, []types.TimeString{"09:00", "11:00"}, BookableStarts(slots))
	assert.Equal(t, ReasonConflict, slots[1].Decision.Reason)
}

func TestTimeline_NotBefore(t *testing.T) {
	window := domain.OperatingWindow{Open: "09:00", Close: "11:00"}
	now := types.MustTimeString("09:45")

	slots, err := Timeline(window, 30, 30, nil, &now)
	require.NoError(t, err)

	require.Len(t, slots, 4)
	assert.Equal(t, ReasonInPast, slots[0].Decision.Reason)
	assert.Equal(t, ReasonInPast, slots[1].Decision.Reason)
	assert.True(t, slots[2].Decision.Bookable)
}

func TestTimeline_ClosedAndInvalid(t *testing.T) {
	slots, err := Timeline(domain.OperatingWindow{Closed: true}, 30, 30, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)

	_, err = Timeline(defaultWindow, 30, 0, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidCandidate)

	slots, err = Timeline(domain.OperatingWindow{Open: "09:00", Close: "09:30"}, 60, 15, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}
