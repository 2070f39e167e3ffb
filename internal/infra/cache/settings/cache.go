package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/salon-booking-service/internal/domain"
)

const key = "salon:settings:v1"

var (
	// ErrCacheMiss возвращается, когда в кэше нет настроек
	ErrCacheMiss = errors.New("settings.cache: miss")

	// ErrCache возвращается при ошибках Redis или сериализации
	ErrCache = errors.New("settings.cache: redis error")
)

// Cache кэш собранных настроек сайта в Redis
type Cache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewCache создает кэш настроек
func NewCache(client redis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get возвращает настройки из кэша
func (c *Cache) Get(ctx context.Context) (*domain.SiteSettings, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get: %v", ErrCache, err)
	}

	var s domain.SiteSettings
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: Get - decode: %v", ErrCache, err)
	}
	return &s, nil
}

// Set сохраняет настройки на ttl
func (c *Cache) Set(ctx context.Context, s *domain.SiteSettings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("%w: Set - encode: %v", ErrCache, err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set: %v", ErrCache, err)
	}
	return nil
}

// Invalidate удаляет настройки из кэша
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate: %v", ErrCache, err)
	}
	return nil
}
