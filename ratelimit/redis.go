package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type RateLimiter interface {
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, window time.Duration) error
}

type RedisRateLimiter struct {
	client *redis.Client
}

func NewRedisRateLimiter(c *redis.Client) *RedisRateLimiter {
	return &RedisRateLimiter{client: c}
}

func (l *RedisRateLimiter) Incr(ctx context.Context, key string) (int64, error) {
	return l.client.Incr(ctx, key).Result()
}

func (l *RedisRateLimiter) Expire(ctx context.Context, key string, window time.Duration) error {
	return l.client.Expire(ctx, key, window).Err()
}
