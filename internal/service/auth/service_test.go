package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/salon-booking-service/internal/domain"
	adminRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/admin"
	"github.com/m04kA/salon-booking-service/internal/service/auth/models"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeRepo struct {
	admins   []*domain.AdminUser
	countErr error
}

func (r *fakeRepo) Count(context.Context) (int64, error) {
	return int64(len(r.admins)), r.countErr
}

func (r *fakeRepo) Create(_ context.Context, a *domain.AdminUser) (*domain.AdminUser, error) {
	for _, existing := range r.admins {
		if existing.Email == a.Email {
			return nil, adminRepo.ErrDuplicateEmail
		}
	}
	a.ID = int64(len(r.admins) + 1)
	r.admins = append(r.admins, a)
	return a, nil
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*domain.AdminUser, error) {
	for _, a := range r.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, adminRepo.ErrAdminNotFound
}

type fakeTx struct{ calls int }

func (f *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

func newTestService() (*Service, *fakeRepo, *fakeTx) {
	repo := &fakeRepo{}
	tx := &fakeTx{}
	svc := NewService(repo, tx, testSecret, time.Hour, nopLogger{})
	svc.bcryptCost = bcrypt.MinCost
	svc.timeProvider = fixedTime{now: time.Now()}
	return svc, repo, tx
}

func TestBootstrap_OnlyOnce(t *testing.T) {
	svc, repo, tx := newTestService()

	admin, err := svc.Bootstrap(context.Background(), &models.CredentialsRequest{Email: " Owner@Salon.test ", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "owner@salon.test", admin.Email)
	assert.Equal(t, 1, tx.calls)
	assert.NotEqual(t, "s3cret-pass", repo.admins[0].PasswordHash)

	_, err = svc.Bootstrap(context.Background(), &models.CredentialsRequest{Email: "other@salon.test", Password: "another-pass"})
	assert.ErrorIs(t, err, ErrAlreadyBootstrapped)
	assert.Len(t, repo.admins, 1)
}

func TestBootstrap_Validation(t *testing.T) {
	svc, _, tx := newTestService()

	_, err := svc.Bootstrap(context.Background(), &models.CredentialsRequest{Email: "not-an-email", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Bootstrap(context.Background(), &models.CredentialsRequest{Email: "owner@salon.test", Password: "short"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Equal(t, 0, tx.calls)
}

func TestBootstrap_RepositoryError(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.countErr = errors.New("db down")

	_, err := svc.Bootstrap(context.Background(), &models.CredentialsRequest{Email: "owner@salon.test", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestEnsureBootstrap(t *testing.T) {
	svc, repo, _ := newTestService()

	require.NoError(t, svc.EnsureBootstrap(context.Background(), "", ""))
	assert.Empty(t, repo.admins)

	require.NoError(t, svc.EnsureBootstrap(context.Background(), "owner@salon.test", "s3cret-pass"))
	require.NoError(t, svc.EnsureBootstrap(context.Background(), "owner@salon.test", "s3cret-pass"))
	assert.Len(t, repo.admins, 1)
}

func TestLoginAndParseToken(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Bootstrap(context.Background(), &models.CredentialsRequest{Email: "owner@salon.test", Password: "s3cret-pass"})
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), &models.CredentialsRequest{Email: "owner@salon.test", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", token.TokenType)

	claims, err := svc.ParseToken(token.Token)
	require.NoError(t, err)
	id, err := claims.AdminID()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, "owner@salon.test", claims.Email)
}

func TestLogin_WrongCredentials(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Bootstrap(context.Background(), &models.CredentialsRequest{Email: "owner@salon.test", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &models.CredentialsRequest{Email: "owner@salon.test", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &models.CredentialsRequest{Email: "nobody@salon.test", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseToken_Rejects(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Bootstrap(context.Background(), &models.CredentialsRequest{Email: "owner@salon.test", Password: "s3cret-pass"})
	require.NoError(t, err)
	token, err := svc.Login(context.Background(), &models.CredentialsRequest{Email: "owner@salon.test", Password: "s3cret-pass"})
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		svc.timeProvider = fixedTime{now: time.Now().Add(2 * time.Hour)}
		defer func() { svc.timeProvider = fixedTime{now: time.Now()} }()
		_, err := svc.ParseToken(token.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other secret", func(t *testing.T) {
		other := NewService(&fakeRepo{}, &fakeTx{}, "ffffffffffffffffffffffffffffffff", time.Hour, nopLogger{})
		_, err := other.ParseToken(token.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned", func(t *testing.T) {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject:   "1",
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = svc.ParseToken(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ParseToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
