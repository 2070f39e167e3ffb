package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/salon-booking-service/internal/availability"
	"github.com/m04kA/salon-booking-service/internal/domain"
	getAvailableSlots "github.com/m04kA/salon-booking-service/internal/usecase/get_available_slots"
	"github.com/m04kA/salon-booking-service/pkg/logger"
)

type fakeUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	return f.resp, f.err
}

func get(uc *fakeUseCase, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?"+query, nil)
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_ReturnsSlotsAndBusy(t *testing.T) {
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	booked := availability.Obstacle{
		Kind:        availability.KindBooking,
		Interval:    domain.TimeInterval{Start: "10:00", End: "11:00"},
		BookingID:   9,
		ServiceName: "Haircut",
	}
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date:            date,
		ServiceID:       1,
		ServiceName:     "Haircut",
		DurationMinutes: 60,
		Window:          domain.OperatingWindow{Open: "09:00", Close: "11:00"},
		Obstacles:       []availability.Obstacle{booked},
		Slots: []availability.SlotStatus{
			{Start: "09:00", Decision: availability.Decision{Bookable: true, Interval: domain.TimeInterval{Start: "09:00", End: "10:00"}}},
			{Start: "09:30", Decision: availability.Decision{Reason: availability.ReasonConflict, Interval: domain.TimeInterval{Start: "09:30", End: "10:30"}}},
			{Start: "10:00", Decision: availability.Decision{Reason: availability.ReasonConflict, Interval: domain.TimeInterval{Start: "10:00", End: "11:00"}}},
		},
	}}

	rec := get(uc, "serviceId=1&date=2025-03-14")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, date, uc.got.Date)

	var resp AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "09:00", resp.Hours.Open)
	require.Len(t, resp.Slots, 3)
	assert.True(t, resp.Slots[0].Available)
	assert.Equal(t, "10:00", resp.Slots[0].EndTime)
	assert.False(t, resp.Slots[1].Available)
	assert.Equal(t, "conflict", resp.Slots[1].Reason)
	require.Len(t, resp.Busy, 1)
	assert.Equal(t, "booking", resp.Busy[0].Kind)
}

func TestHandle_Validation(t *testing.T) {
	tests := []struct {
		name  string
		query string
		err   error
		want  int
	}{
		{"missing service", "date=2025-03-14", nil, http.StatusBadRequest},
		{"missing date", "serviceId=1", nil, http.StatusBadRequest},
		{"bad date", "serviceId=1&date=14-03-2025", nil, http.StatusBadRequest},
		{"unknown service", "serviceId=1&date=2025-03-14", getAvailableSlots.ErrServiceNotFound, http.StatusNotFound},
		{"past date", "serviceId=1&date=2025-03-14", getAvailableSlots.ErrInvalidDate, http.StatusBadRequest},
		{"too far", "serviceId=1&date=2025-03-14", getAvailableSlots.ErrDateTooFarInFuture, http.StatusBadRequest},
		{"internal", "serviceId=1&date=2025-03-14", getAvailableSlots.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(&fakeUseCase{err: tt.err}, tt.query)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
