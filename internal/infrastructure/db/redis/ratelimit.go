package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// FixedWindowLimiter counts requests per key in fixed time windows backed by
// Redis, so the limit holds across multiple API instances.
// Key format: ratelimit:<key>:<window_number>
type FixedWindowLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewFixedWindowLimiter creates a limiter allowing limit requests per key
// within each window.
func NewFixedWindowLimiter(client *redis.Client, limit int64, window time.Duration) *FixedWindowLimiter {
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &FixedWindowLimiter{client: client, limit: limit, window: window}
}

// Allow records one request for key and reports whether it stays within the
// window's limit.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.windowKey(key, time.Now())

	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		// First hit in this window; expire the counter two windows out so
		// stale keys clean themselves up.
		if err := l.client.Expire(ctx, k, 2*l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}

	return n <= l.limit, nil
}

func (l *FixedWindowLimiter) windowKey(key string, now time.Time) string {
	return fmt.Sprintf("ratelimit:%s:%d", key, now.Unix()/int64(l.window.Seconds()))
}
