package settings

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/salon-booking-service/internal/domain"
)

func newCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCache(client, time.Minute), mr
}

func TestCache_RoundTrip(t *testing.T) {
	cache, _ := newCache(t)
	ctx := context.Background()

	_, err := cache.Get(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)

	s := domain.DefaultSiteSettings()
	s.Contact.Phone = "+1 555 0100"
	s.Hours[domain.Sunday] = domain.OperatingWindow{Closed: true}
	require.NoError(t, cache.Set(ctx, &s))

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "+1 555 0100", got.Contact.Phone)
	assert.True(t, got.Hours[domain.Sunday].Closed)
	assert.Equal(t, s.Hours[domain.Monday], got.Hours[domain.Monday])
}

func TestCache_TTLAndInvalidate(t *testing.T) {
	cache, mr := newCache(t)
	ctx := context.Background()

	s := domain.DefaultSiteSettings()
	require.NoError(t, cache.Set(ctx, &s))
	assert.Equal(t, time.Minute, mr.TTL(key))

	require.NoError(t, cache.Invalidate(ctx))
	_, err := cache.Get(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_Expired(t *testing.T) {
	cache, mr := newCache(t)
	ctx := context.Background()

	s := domain.DefaultSiteSettings()
	require.NoError(t, cache.Set(ctx, &s))
	mr.FastForward(2 * time.Minute)

	_, err := cache.Get(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_RedisDown(t *testing.T) {
	cache, mr := newCache(t)
	mr.Close()

	_, err := cache.Get(context.Background())
	assert.ErrorIs(t, err, ErrCache)
}
