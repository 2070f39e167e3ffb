package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/salon-booking-service/internal/availability"
	"github.com/m04kA/salon-booking-service/internal/domain"
	createBooking "github.com/m04kA/salon-booking-service/internal/usecase/create_booking"
	"github.com/m04kA/salon-booking-service/pkg/logger"
	"github.com/m04kA/salon-booking-service/pkg/types"
)

type fakeUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	return f.resp, f.err
}

const validBody = `{
	"serviceId": 1,
	"bookingDate": "2025-03-14",
	"startTime": "11:00",
	"customerName": "Anna",
	"customerEmail": "anna@example.com"
}`

func post(t *testing.T, uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, logger.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &createBooking.Response{
		ID:              42,
		ServiceID:       1,
		BookingDate:     time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		StartTime:       "11:00",
		EndTime:         "12:00",
		DurationMinutes: 60,
		Status:          string(domain.StatusConfirmed),
		ServiceName:     "Haircut",
		ServicePrice:    35,
		CustomerName:    "Anna",
		CustomerEmail:   "anna@example.com",
		CreatedAt:       now,
		UpdatedAt:       now,
	}}

	rec := post(t, uc, validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, types.TimeString("11:00"), uc.got.StartTime)
	assert.Equal(t, "anna@example.com", uc.got.CustomerEmail)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "12:00", resp.EndTime)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"broken json", `{"serviceId":`, msgInvalidRequestBody},
		{"unknown field", `{"serviceId":1,"userId":5}`, msgInvalidRequestBody},
		{"bad date", strings.Replace(validBody, "2025-03-14", "14.03.2025", 1), msgInvalidDate},
		{"bad time", strings.Replace(validBody, "11:00", "11h", 1), msgInvalidTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec := post(t, uc, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tt.want), rec.Body.String())
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_ConflictCarriesFreshObstacles(t *testing.T) {
	conflict := availability.Obstacle{
		Kind:        availability.KindBooking,
		Interval:    domain.TimeInterval{Start: "10:30", End: "11:30"},
		BookingID:   7,
		ServiceName: "Manicure",
	}
	block := availability.Obstacle{
		Kind:     availability.KindBlocked,
		Interval: domain.TimeInterval{Start: "15:00", End: "16:00"},
		BlockID:  3,
		Reason:   "training",
	}
	uc := &fakeUseCase{err: fmt.Errorf("wrapped: %w", &createBooking.RejectedError{
		Reason:    availability.ReasonConflict,
		Conflicts: []availability.Obstacle{conflict},
		Obstacles: []availability.Obstacle{conflict, block},
	})}

	rec := post(t, uc, validBody)

	require.Equal(t, http.StatusConflict, rec.Code)

	var resp RejectedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, msgSlotNotAvailable, resp.Error)
	assert.Equal(t, "conflict", resp.Reason)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, "10:30", resp.Conflicts[0].StartTime)
	assert.Equal(t, int64(7), resp.Conflicts[0].BookingID)
	require.Len(t, resp.Busy, 2)
	assert.Equal(t, "blocked", resp.Busy[1].Kind)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"closed", &createBooking.RejectedError{Reason: availability.ReasonClosed}, http.StatusUnprocessableEntity},
		{"outside hours", &createBooking.RejectedError{Reason: availability.ReasonOutsideHours}, http.StatusUnprocessableEntity},
		{"in past", &createBooking.RejectedError{Reason: availability.ReasonInPast}, http.StatusUnprocessableEntity},
		{"plain conflict", createBooking.ErrSlotNotAvailable, http.StatusConflict},
		{"service not found", createBooking.ErrServiceNotFound, http.StatusNotFound},
		{"past date", createBooking.ErrInvalidDate, http.StatusBadRequest},
		{"too far", createBooking.ErrDateTooFarInFuture, http.StatusBadRequest},
		{"invalid input", fmt.Errorf("%w: email", createBooking.ErrInvalidInput), http.StatusBadRequest},
		{"internal", errors.New("db is down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, &fakeUseCase{err: tt.err}, validBody)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
