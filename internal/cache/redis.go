package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aprahadian/flightbook/config"
	"github.com/aprahadian/flightbook/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache holds a short-lived copy of a user's bookings list so the
// bookings tab does not hit the service on every visit. A cache miss is
// reported as (nil, nil).
type RedisCache struct {
	client      redis.UniversalClient
	bookingsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, bookingsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:      redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		bookingsTTL: bookingsTTL,
	}
}

// NewRedisCacheWithClient is used by tests to inject a mock client.
func NewRedisCacheWithClient(client redis.UniversalClient, bookingsTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, bookingsTTL: bookingsTTL}
}

func (c *RedisCache) GetBookings(ctx context.Context, userID string) ([]domain.BookingSummary, error) {
	data, err := c.client.Get(ctx, bookingsKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var bookings []domain.BookingSummary
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *RedisCache) SetBookings(ctx context.Context, userID string, bookings []domain.BookingSummary) error {
	payload, err := json.Marshal(bookings)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, bookingsKey(userID), payload, c.bookingsTTL).Err()
}

func (c *RedisCache) InvalidateBookings(ctx context.Context, userID string) error {
	return c.client.Del(ctx, bookingsKey(userID)).Err()
}

func bookingsKey(userID string) string {
	return fmt.Sprintf("cache:bookings:%s", userID)
}
