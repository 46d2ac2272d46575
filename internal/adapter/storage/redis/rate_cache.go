package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RateCache implements ports.RateCache. Exchange rates are cached for a
// short TTL so a burst of device mints does not turn into a burst of
// upstream ticker calls.
type RateCache struct {
	client *goredis.Client
	prefix string
}

// NewRateCache creates a new Redis-backed exchange-rate cache.
func NewRateCache(client *goredis.Client) *RateCache {
	return &RateCache{
		client: client,
		prefix: "rate:",
	}
}

// Get returns the cached rate for key and whether it was present.
func (c *RateCache) Get(ctx context.Context, key string) (float64, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Result()
	if err != nil {
		if err == goredis.Nil {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("redis rate get: %w", err)
	}
	rate, err := strconv.ParseFloat(val, 64)
	if err != nil {
		// Treat a corrupted entry as a miss; it will be overwritten.
		return 0, false, nil
	}
	return rate, true, nil
}

// Set stores a rate under key for ttl.
func (c *RateCache) Set(ctx context.Context, key string, rate float64, ttl time.Duration) error {
	val := strconv.FormatFloat(rate, 'f', -1, 64)
	if err := c.client.Set(ctx, c.prefix+key, val, ttl).Err(); err != nil {
		return fmt.Errorf("redis rate set: %w", err)
	}
	return nil
}
