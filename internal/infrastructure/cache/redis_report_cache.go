package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/billcraft/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// RedisReportCache implements ReportCache using Redis.
// Suitable for distributed deployments where multiple instances serve the
// same cached reports.
type RedisReportCache struct {
	client *redis.Client
}

// NewRedisReportCache creates a new Redis-based report cache
func NewRedisReportCache(cfg config.RedisConfig) (*RedisReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisReportCache{client: client}, nil
}

// NewRedisReportCacheWithClient creates a cache with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisReportCacheWithClient(client *redis.Client) *RedisReportCache {
	return &RedisReportCache{client: client}
}

// Get retrieves a cached payload, nil on miss
func (c *RedisReportCache) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached report: %w", err)
	}
	return payload, nil
}

// Set stores a payload, replacing any previous entry for the key.
// A zero TTL stores the entry without expiry.
func (c *RedisReportCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}
	return nil
}

// Delete removes a cached payload
func (c *RedisReportCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete cached report: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisReportCache) Close() error {
	return c.client.Close()
}

// Ensure RedisReportCache implements ReportCache
var _ ReportCache = (*RedisReportCache)(nil)
