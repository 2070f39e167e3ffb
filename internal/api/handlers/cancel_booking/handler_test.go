package cancel_booking

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/salon-booking-service/internal/service/bookings"
	"github.com/m04kA/salon-booking-service/internal/service/bookings/models"
	"github.com/m04kA/salon-booking-service/pkg/logger"
)

type fakeService struct {
	gotID  int64
	gotReq *models.CancelBookingRequest
	err    error
}

func (f *fakeService) Cancel(_ context.Context, id int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	f.gotID, f.gotReq = id, req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, Status: "cancelled"}, nil
}

func patch(svc *fakeService, id, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+id+"/cancel", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": id})
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Cancelled(t *testing.T) {
	svc := &fakeService{}
	rec := patch(svc, "5", `{"email":"anna@example.com","cancellationReason":"sick"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), svc.gotID)
	assert.Equal(t, "sick", svc.gotReq.CancellationReason)
	assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		body       string
		err        error
		wantStatus int
	}{
		{"bad id", "x", `{"email":"a@b.c"}`, nil, http.StatusBadRequest},
		{"missing email", "5", `{"cancellationReason":"sick"}`, nil, http.StatusBadRequest},
		{"not found", "5", `{"email":"a@b.c"}`, bookings.ErrBookingNotFound, http.StatusNotFound},
		{"foreign email looks like not found", "5", `{"email":"a@b.c"}`, bookings.ErrAccessDenied, http.StatusNotFound},
		{"already started", "5", `{"email":"a@b.c"}`, bookings.ErrCannotCancel, http.StatusUnprocessableEntity},
		{"internal", "5", `{"email":"a@b.c"}`, errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := patch(&fakeService{err: tt.err}, tt.id, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
