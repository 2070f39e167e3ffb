package settings

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/salon-booking-service/internal/domain"
	settingsCache "github.com/m04kA/salon-booking-service/internal/infra/cache/settings"
	settingsRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/settings"
	"github.com/m04kA/salon-booking-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	sections map[domain.SettingsSection]json.RawMessage
	loads    int
	err      error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sections: map[domain.SettingsSection]json.RawMessage{}}
}

func (r *fakeRepo) GetAll(context.Context) ([]*settingsRepo.Section, error) {
	r.loads++
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*settingsRepo.Section, 0, len(r.sections))
	for name, value := range r.sections {
		out = append(out, &settingsRepo.Section{Name: name, Value: value, UpdatedAt: time.Now()})
	}
	return out, nil
}

func (r *fakeRepo) Upsert(_ context.Context, section domain.SettingsSection, value json.RawMessage) (time.Time, error) {
	if r.err != nil {
		return time.Time{}, r.err
	}
	r.sections[section] = value
	return time.Now(), nil
}

func newRedisCache(t *testing.T) *settingsCache.Cache {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return settingsCache.NewCache(client, time.Minute)
}

func TestGet_DefaultsWhenNothingSaved(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nopLogger{})

	s, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultWeeklyHours(), s.Hours)
	assert.Equal(t, "Salon", s.Branding.SalonName)
}

func TestGet_MergesSavedSections(t *testing.T) {
	repo := newFakeRepo()
	repo.sections[domain.SectionContact] = json.RawMessage(`{"phone":"+100","address":"1 Main St"}`)
	svc := NewService(repo, nil, nopLogger{})

	s, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "+100", s.Contact.Phone)
	assert.Equal(t, "1 Main St", s.Contact.Address)
	assert.False(t, s.UpdatedAt.IsZero())
}

func TestGet_CorruptedHoursFallBackToDefaults(t *testing.T) {
	repo := newFakeRepo()
	repo.sections[domain.SectionHours] = json.RawMessage(`[{"open":"20:00","close":"09:00"}]`)
	svc := NewService(repo, nil, nopLogger{})

	s, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultWeeklyHours(), s.Hours)
}

func TestGet_RepositoryError(t *testing.T) {
	repo := newFakeRepo()
	repo.err = errors.New("db down")
	svc := NewService(repo, nil, nopLogger{})

	_, err := svc.Get(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestGet_ServedFromCache(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, newRedisCache(t), nopLogger{})
	ctx := context.Background()

	_, err := svc.Get(ctx)
	require.NoError(t, err)
	_, err = svc.Get(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.loads)
}

func TestUpdateHours_InvalidatesCache(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, newRedisCache(t), nopLogger{})
	ctx := context.Background()

	_, err := svc.Get(ctx)
	require.NoError(t, err)

	hours := domain.DefaultWeeklyHours()
	hours[domain.Sunday] = domain.OperatingWindow{Closed: true}
	hours[domain.Saturday] = domain.OperatingWindow{Open: types.MustTimeString("10:00"), Close: types.MustTimeString("16:00")}

	updated, err := svc.UpdateHours(ctx, hours)
	require.NoError(t, err)
	assert.True(t, updated.Hours[domain.Sunday].Closed)

	s, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("16:00"), s.Hours[domain.Saturday].Close)
	assert.Equal(t, 2, repo.loads)
}

func TestUpdateHours_Invalid(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nopLogger{})

	hours := domain.DefaultWeeklyHours()
	hours[domain.Monday] = domain.OperatingWindow{Open: types.MustTimeString("18:00"), Close: types.MustTimeString("09:00")}

	_, err := svc.UpdateHours(context.Background(), hours)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateEmail_Validation(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nopLogger{})
	ctx := context.Background()

	_, err := svc.UpdateEmail(ctx, domain.EmailSettings{Enabled: true})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateEmail(ctx, domain.EmailSettings{AdminRecipients: []string{"nope"}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	s, err := svc.UpdateEmail(ctx, domain.EmailSettings{
		Enabled:   true,
		SMTPHost:  "smtp.example.com",
		SMTPPort:  465,
		FromEmail: "hello@iris.test",
	})
	require.NoError(t, err)
	assert.True(t, s.Email.IsConfigured())
	assert.NotNil(t, s.Email.AdminRecipients)
}

func TestUpdateBranding_Validation(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nopLogger{})
	ctx := context.Background()

	_, err := svc.UpdateBranding(ctx, domain.Branding{PrimaryColor: "red"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	s, err := svc.UpdateBranding(ctx, domain.Branding{SalonName: "Iris", PrimaryColor: "#fff", AccentColor: "#DB2777"})
	require.NoError(t, err)
	assert.Equal(t, "Iris", s.Branding.SalonName)
	assert.Equal(t, []string{}, s.Branding.GalleryURLs)
}

func TestUpdateContact_InvalidEmail(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nopLogger{})

	_, err := svc.UpdateContact(context.Background(), domain.ContactInfo{Email: "not an email"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateEmail_RedactedPasswordKeepsStored(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nopLogger{})
	ctx := context.Background()

	email := domain.EmailSettings{
		Enabled:      true,
		SMTPHost:     "smtp.example.com",
		SMTPPort:     587,
		SMTPPassword: "s3cret",
		FromEmail:    "hello@iris.test",
	}
	_, err := svc.UpdateEmail(ctx, email)
	require.NoError(t, err)

	email.SMTPPassword = email.Redacted().SMTPPassword
	email.FromName = "Iris"
	s, err := svc.UpdateEmail(ctx, email)
	require.NoError(t, err)

	assert.Equal(t, "s3cret", s.Email.SMTPPassword)
	assert.Equal(t, "Iris", s.Email.FromName)
}
