package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/salon-booking-service/internal/domain"
	bookingRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/booking"
	"github.com/m04kA/salon-booking-service/internal/service/bookings/models"
	"github.com/m04kA/salon-booking-service/pkg/ptr"
	"github.com/m04kA/salon-booking-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeRepo struct {
	bookings   map[int64]*domain.Booking
	lastFilter domain.BookingsFilter
	writeErr   error

	// beforeWrite вызывается перед записью (имитация параллельного изменения)
	beforeWrite func(r *fakeRepo)
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.lastFilter = filter
	out := make([]*domain.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	if status != domain.StatusCancelled {
		b.CancelledAt = nil
		b.CancellationReason = nil
	}
	return nil
}

func (r *fakeRepo) Cancel(_ context.Context, id int64, reason string) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = domain.StatusCancelled
	if reason != "" {
		b.CancellationReason = ptr.Ptr(reason)
	}
	b.CancelledAt = ptr.Ptr(time.Now())
	return nil
}

func (r *fakeRepo) CancelByCustomer(ctx context.Context, id int64, reason string) error {
	if r.beforeWrite != nil {
		r.beforeWrite(r)
	}
	b, ok := r.bookings[id]
	if ok && !b.IsActive() {
		return bookingRepo.ErrNotCancellable
	}
	return r.Cancel(ctx, id, reason)
}

type fakeNotifier struct {
	changed []*domain.Booking
}

func (n *fakeNotifier) BookingStatusChanged(b *domain.Booking) {
	n.changed = append(n.changed, b)
}

// 2025-03-14 12:00 UTC
var now = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func booking(id int64, date time.Time, start string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		ServiceID:       1,
		CustomerName:    "Anna",
		CustomerEmail:   "Anna@Example.com",
		BookingDate:     date,
		StartTime:       types.MustTimeString(start),
		DurationMinutes: 60,
		Status:          status,
		ServiceName:     "Haircut",
		ServicePrice:    35,
	}
}

func newService(bookings ...*domain.Booking) (*Service, *fakeRepo, *fakeNotifier) {
	repo := &fakeRepo{bookings: map[int64]*domain.Booking{}}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	notifier := &fakeNotifier{}
	svc := NewService(repo, notifier, time.UTC, nopLogger{})
	svc.timeProvider = fixedTime{now: now}
	return svc, repo, notifier
}

func TestCancel_FutureConfirmedBooking(t *testing.T) {
	tomorrow := now.AddDate(0, 0, 1)
	svc, repo, notifier := newService(booking(1, tomorrow, "10:00", domain.StatusConfirmed))

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{Email: "anna@example.com", CancellationReason: " sick "})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, "sick", *resp.CancellationReason)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
	require.Len(t, notifier.changed, 1)
	assert.Equal(t, domain.StatusCancelled, notifier.changed[0].Status)
}

func TestCancel_LaterToday(t *testing.T) {
	svc, _, _ := newService(booking(1, now, "12:30", domain.StatusPending))

	_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{Email: "anna@example.com"})
	assert.NoError(t, err)
}

func TestCancel_AlreadyStarted(t *testing.T) {
	svc, repo, notifier := newService(booking(1, now, "12:00", domain.StatusConfirmed))

	_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{Email: "anna@example.com"})
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Equal(t, domain.StatusConfirmed, repo.bookings[1].Status)
	assert.Empty(t, notifier.changed)
}

func TestCancel_NotFromCompletedOrCancelled(t *testing.T) {
	tomorrow := now.AddDate(0, 0, 1)
	for _, status := range []domain.BookingStatus{domain.StatusCompleted, domain.StatusCancelled} {
		svc, _, _ := newService(booking(1, tomorrow, "10:00", status))
		_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{Email: "anna@example.com"})
		assert.ErrorIs(t, err, ErrCannotCancel, status)
	}
}

// Администратор завершил бронирование между проверкой и записью: отмена не перезаписывает статус
func TestCancel_StatusChangedBeforeWrite(t *testing.T) {
	tomorrow := now.AddDate(0, 0, 1)
	svc, repo, notifier := newService(booking(1, tomorrow, "10:00", domain.StatusConfirmed))
	repo.beforeWrite = func(r *fakeRepo) {
		r.bookings[1].Status = domain.StatusCompleted
	}

	_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{Email: "anna@example.com"})
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Equal(t, domain.StatusCompleted, repo.bookings[1].Status)
	assert.Empty(t, notifier.changed)
}

func TestCancel_EmailMismatch(t *testing.T) {
	svc, _, _ := newService(booking(1, now.AddDate(0, 0, 1), "10:00", domain.StatusConfirmed))

	_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{Email: "other@example.com"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{Email: ""})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_UsesSalonTimezone(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	// 12:00 UTC = 15:00 local; a 14:00 local booking has already started
	svc, _, _ := newService(booking(1, now, "14:00", domain.StatusConfirmed))
	svc.location = loc

	_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{Email: "anna@example.com"})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestUpdateStatus_Permissive(t *testing.T) {
	svc, repo, notifier := newService(booking(1, now.AddDate(0, 0, -2), "10:00", domain.StatusCompleted))
	ctx := context.Background()

	resp, err := svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Empty(t, notifier.changed)

	_, err = svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	require.Len(t, notifier.changed, 1)

	_, err = svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{Status: "cancelled", CancellationReason: ptr.Ptr("no show")})
	require.NoError(t, err)
	require.Len(t, notifier.changed, 2)
	assert.Equal(t, "no show", *repo.bookings[1].CancellationReason)

	_, err = svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Len(t, notifier.changed, 2)
	assert.Nil(t, repo.bookings[1].CancellationReason)
}

func TestUpdateStatus_SameStatusIsNoop(t *testing.T) {
	svc, _, notifier := newService(booking(1, now, "10:00", domain.StatusConfirmed))

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Empty(t, notifier.changed)
}

func TestUpdateStatus_Errors(t *testing.T) {
	svc, repo, _ := newService(booking(1, now, "10:00", domain.StatusCancelled))
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{Status: "done"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateStatus(ctx, 99, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	repo.writeErr = bookingRepo.ErrSlotNotAvailable
	_, err = svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	repo.writeErr = errors.New("boom")
	_, err = svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestGetForCustomer(t *testing.T) {
	svc, _, _ := newService(booking(1, now, "10:00", domain.StatusConfirmed))
	ctx := context.Background()

	resp, err := svc.GetForCustomer(ctx, 1, "ANNA@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "11:00", resp.EndTime)
	assert.Equal(t, "2025-03-14", resp.BookingDate)

	_, err = svc.GetForCustomer(ctx, 1, "x@example.com")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestList_BuildsFilter(t *testing.T) {
	svc, repo, _ := newService(booking(1, now, "10:00", domain.StatusConfirmed))

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{
		StartDate: ptr.Ptr("2025-03-01"),
		EndDate:   ptr.Ptr("2025-03-31"),
		Status:    ptr.Ptr("confirmed"),
		ServiceID: ptr.Ptr(int64(1)),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *repo.lastFilter.Status)
	assert.Equal(t, "2025-03-31", repo.lastFilter.EndDate.Format(domain.DateFormat))
}

func TestList_InvalidFilter(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.List(context.Background(), &models.ListBookingsRequest{StartDate: ptr.Ptr("14.03.2025")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(context.Background(), &models.ListBookingsRequest{
		StartDate: ptr.Ptr("2025-03-31"),
		EndDate:   ptr.Ptr("2025-03-01"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(context.Background(), &models.ListBookingsRequest{Status: ptr.Ptr("gone")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListByCustomer_IncludesCancelled(t *testing.T) {
	svc, repo, _ := newService(booking(1, now, "10:00", domain.StatusCancelled))

	_, err := svc.ListByCustomer(context.Background(), "anna@example.com")
	require.NoError(t, err)
	assert.True(t, repo.lastFilter.IncludeCancelled)
	assert.Equal(t, "anna@example.com", *repo.lastFilter.CustomerEmail)

	_, err = svc.ListByCustomer(context.Background(), " ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
