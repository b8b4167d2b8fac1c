// Package cache provides a Redis-backed implementation of the rate cache
// port. Failures degrade to cache misses so the settings store remains the
// source of truth.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 5 * time.Minute

// RedisRateCache implements port.RateCache on top of go-redis.
type RedisRateCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisRateCache creates a cache over the given client.
func NewRedisRateCache(client *redis.Client, logger *slog.Logger) *RedisRateCache {
	return &RedisRateCache{client: client, ttl: defaultTTL, logger: logger}
}

// Get returns the cached value, with ok=false on miss or any Redis error.
func (c *RedisRateCache) Get(ctx context.Context, key string) (string, bool) {
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("redis get failed", "key", key, "error", err)
		}
		return "", false
	}
	return value, true
}

// Set writes the value with the cache TTL.
func (c *RedisRateCache) Set(ctx context.Context, key, value string) error {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Delete invalidates the key.
func (c *RedisRateCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}
