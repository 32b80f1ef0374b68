package api

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisRateCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

func incrWithTTL(ctx context.Context, client redisRateCounter, key string, ttl time.Duration) (int64, error) {
	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		_ = client.Expire(ctx, key, ttl).Err()
	}
	return count, nil
}

// RateLimiter 是固定窗口计数器：每个 key 在 window 内最多允许 limit 次。
type RateLimiter struct {
	client redisRateCounter
	prefix string
	limit  int64
	window time.Duration
}

// NewRateLimiter 构造限流器；client 为 nil 或 limit <= 0 时不限流。
func NewRateLimiter(client redisRateCounter, prefix string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, prefix: prefix, limit: int64(limit), window: window}
}

// Allow 计数并判断是否仍在限额内。Redis 故障时放行并返回错误供调用方记录。
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l == nil || l.client == nil || l.limit <= 0 {
		return true, nil
	}
	count, err := incrWithTTL(ctx, l.client, fmt.Sprintf("%s:%s", l.prefix, key), l.window)
	if err != nil {
		return true, err
	}
	return count <= l.limit, nil
}
