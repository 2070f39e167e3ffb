package blocks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/salon-booking-service/internal/domain"
	blockedSlotRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/blockedslot"
	"github.com/m04kA/salon-booking-service/internal/service/blocks/models"
	"github.com/m04kA/salon-booking-service/pkg/ptr"
	"github.com/m04kA/salon-booking-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeBlockRepo struct {
	blocks    map[int64]*domain.BlockedSlot
	nextID    int64
	createErr error
	lastFrom  time.Time
	lastTo    time.Time
}

func (r *fakeBlockRepo) Create(_ context.Context, slot *domain.BlockedSlot) (*domain.BlockedSlot, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	slot.ID = r.nextID
	r.blocks[slot.ID] = slot
	return slot, nil
}

func (r *fakeBlockRepo) GetByID(_ context.Context, id int64) (*domain.BlockedSlot, error) {
	b, ok := r.blocks[id]
	if !ok {
		return nil, blockedSlotRepo.ErrBlockedSlotNotFound
	}
	return b, nil
}

func (r *fakeBlockRepo) GetByRange(_ context.Context, from, to time.Time) ([]*domain.BlockedSlot, error) {
	r.lastFrom, r.lastTo = from, to
	out := make([]*domain.BlockedSlot, 0, len(r.blocks))
	for _, b := range r.blocks {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBlockRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.blocks[id]; !ok {
		return blockedSlotRepo.ErrBlockedSlotNotFound
	}
	delete(r.blocks, id)
	return nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (r *fakeBookingRepo) GetObstaclesByDate(context.Context, time.Time) ([]*domain.Booking, error) {
	return r.bookings, r.err
}

func newTestService(bookings ...*domain.Booking) (*Service, *fakeBlockRepo, *fakeBookingRepo) {
	blocks := &fakeBlockRepo{blocks: map[int64]*domain.BlockedSlot{}}
	bookingRepo := &fakeBookingRepo{bookings: bookings}
	svc := NewService(blocks, bookingRepo, time.UTC, nopLogger{})
	svc.timeProvider = fixedTime{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	return svc, blocks, bookingRepo
}

func booking(id, serviceID int64, start string, duration int) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		ServiceID:       serviceID,
		CustomerName:    "Anna",
		ServiceName:     "Haircut",
		BookingDate:     time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		StartTime:       types.MustTimeString(start),
		DurationMinutes: duration,
		Status:          domain.StatusConfirmed,
	}
}

func TestCreate_ReportsOverlappingBookings(t *testing.T) {
	svc, blocks, _ := newTestService(
		booking(1, 1, "11:00", 60), // touches the block start, no overlap
		booking(2, 1, "11:30", 60), // overlaps
		booking(3, 2, "13:00", 30), // starts exactly at block end
	)

	resp, err := svc.Create(context.Background(), &models.CreateBlockRequest{
		Date:      "2025-03-14",
		StartTime: "12:00",
		EndTime:   "13:00",
		Reason:    "  staff training ",
	})
	require.NoError(t, err)

	assert.Equal(t, "staff training", resp.Block.Reason)
	assert.Len(t, blocks.blocks, 1)
	require.Len(t, resp.OverlappingBookings, 1)
	assert.Equal(t, int64(2), resp.OverlappingBookings[0].ID)
	assert.Equal(t, "12:30", resp.OverlappingBookings[0].EndTime)
}

func TestCreate_ServiceScopedBlockIgnoresOtherServices(t *testing.T) {
	svc, _, _ := newTestService(
		booking(1, 1, "12:00", 30),
		booking(2, 2, "12:00", 30),
	)

	resp, err := svc.Create(context.Background(), &models.CreateBlockRequest{
		Date:      "2025-03-14",
		StartTime: "12:00",
		EndTime:   "13:00",
		ServiceID: ptr.Ptr(int64(2)),
	})
	require.NoError(t, err)
	require.Len(t, resp.OverlappingBookings, 1)
	assert.Equal(t, int64(2), resp.OverlappingBookings[0].ID)
}

func TestCreate_BookingLookupFailureStillSucceeds(t *testing.T) {
	svc, _, bookingRepo := newTestService()
	bookingRepo.err = errors.New("db down")

	resp, err := svc.Create(context.Background(), &models.CreateBlockRequest{
		Date: "2025-03-14", StartTime: "12:00", EndTime: "13:00",
	})
	require.NoError(t, err)
	assert.Empty(t, resp.OverlappingBookings)
}

func TestCreate_Validation(t *testing.T) {
	svc, _, _ := newTestService()
	longReason := make([]byte, domain.MaxBlockReasonLength+1)
	for i := range longReason {
		longReason[i] = 'x'
	}

	cases := map[string]*models.CreateBlockRequest{
		"bad date":       {Date: "14.03.2025", StartTime: "12:00", EndTime: "13:00"},
		"past date":      {Date: "2025-03-09", StartTime: "12:00", EndTime: "13:00"},
		"end before":     {Date: "2025-03-14", StartTime: "13:00", EndTime: "12:00"},
		"empty interval": {Date: "2025-03-14", StartTime: "12:00", EndTime: "12:00"},
		"bad start":      {Date: "2025-03-14", StartTime: "25:00", EndTime: "12:00"},
		"long reason":    {Date: "2025-03-14", StartTime: "12:00", EndTime: "13:00", Reason: string(longReason)},
		"bad service":    {Date: "2025-03-14", StartTime: "12:00", EndTime: "13:00", ServiceID: ptr.Ptr(int64(0))},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreate_TodayIsAllowed(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Create(context.Background(), &models.CreateBlockRequest{
		Date: "2025-03-10", StartTime: "18:00", EndTime: "19:00",
	})
	assert.NoError(t, err)
}

func TestCreate_UnknownService(t *testing.T) {
	svc, blocks, _ := newTestService()
	blocks.createErr = blockedSlotRepo.ErrServiceNotFound

	_, err := svc.Create(context.Background(), &models.CreateBlockRequest{
		Date: "2025-03-14", StartTime: "12:00", EndTime: "13:00", ServiceID: ptr.Ptr(int64(9)),
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestList_RangeChecks(t *testing.T) {
	svc, blocks, _ := newTestService()
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.List(context.Background(), from, from.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(context.Background(), from, from.AddDate(1, 0, 0))
	assert.ErrorIs(t, err, ErrInvalidInput)

	resp, err := svc.List(context.Background(), from, from.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.NotNil(t, resp.Blocks)
	assert.Equal(t, from, blocks.lastFrom)
}

func TestGetAndDelete(t *testing.T) {
	svc, blocks, _ := newTestService()
	blocks.blocks[4] = &domain.BlockedSlot{ID: 4, Date: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), StartTime: "12:00", EndTime: "13:00"}

	got, err := svc.Get(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14", got.Date)

	require.NoError(t, svc.Delete(context.Background(), 4))
	assert.ErrorIs(t, svc.Delete(context.Background(), 4), ErrBlockNotFound)

	_, err = svc.Get(context.Background(), 4)
	assert.ErrorIs(t, err, ErrBlockNotFound)
}
