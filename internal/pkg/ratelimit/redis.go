package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window limiter backed by a shared Redis instance,
// for deployments running more than one API process.
type RedisLimiter struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisLimiter creates a new Redis-backed limiter.
func NewRedisLimiter(client *redis.Client, keyPrefix string) *RedisLimiter {
	if keyPrefix == "" {
		keyPrefix = "ratelimit"
	}
	return &RedisLimiter{client: client, keyPrefix: keyPrefix}
}

func (l *RedisLimiter) key(identifier string) string {
	return l.keyPrefix + ":" + identifier
}

// Allow implements Limiter. INCR creates the key at 1 when absent; the expiry
// set on first increment defines the window, so the count resets wholesale
// when the key expires.
func (l *RedisLimiter) Allow(ctx context.Context, identifier string, maxAttempts int, window time.Duration) (bool, error) {
	key := l.key(identifier)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("incrementing rate limit counter: %w", err)
	}

	if count == 1 {
		if err := l.client.Expire(ctx, key, window).Err(); err != nil {
			return false, fmt.Errorf("setting rate limit window: %w", err)
		}
	}

	return count <= int64(maxAttempts), nil
}

// RemainingSeconds implements Limiter.
func (l *RedisLimiter) RemainingSeconds(ctx context.Context, identifier string) (int, error) {
	ttl, err := l.client.TTL(ctx, l.key(identifier)).Result()
	if err != nil {
		return 0, fmt.Errorf("reading rate limit ttl: %w", err)
	}
	if ttl <= 0 {
		return 0, nil
	}
	return int((ttl + time.Second - 1) / time.Second), nil
}
