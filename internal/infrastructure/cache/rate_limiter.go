package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateDecision is the outcome of one Allow call.
type RateDecision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetIn   time.Duration
}

// RedisRateLimiter is a fixed window counter: one INCR per request on a key
// that expires with its window.
type RedisRateLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration) *RedisRateLimiter {
	if window < time.Millisecond {
		window = time.Millisecond
	}
	return &RedisRateLimiter{
		client: client,
		prefix: "ratelimit",
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// windowKey returns the counter key for the window containing now and the
// time left until that window closes.
func (l *RedisRateLimiter) windowKey(subject string, now time.Time) (string, time.Duration) {
	size := l.window.Milliseconds()
	nowMs := now.UnixMilli()
	bucket := nowMs / size
	resetIn := time.Duration(size-(nowMs%size)) * time.Millisecond
	return fmt.Sprintf("%s:%s:%d", l.prefix, subject, bucket), resetIn
}

func (l *RedisRateLimiter) Allow(ctx context.Context, subject string) (RateDecision, error) {
	key, resetIn := l.windowKey(subject, l.now())

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return RateDecision{}, fmt.Errorf("rate limit counter: %w", err)
	}

	count := int(incr.Val())
	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}

	return RateDecision{
		Allowed:   count <= l.limit,
		Limit:     l.limit,
		Remaining: remaining,
		ResetIn:   resetIn,
	}, nil
}
