// Package ratelimit содержит ограничитель частоты запросов на Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"hdnotes/internal/api/ports/ratelimit"
	"hdnotes/pkg/logger"
)

const (
	keyPrefix = "hdnotes:ratelimit:"

	LogMethodAllow = "allow"

	ErrorFailedToCount  = "failed to count request in redis"
	ErrorFailedToExpire = "failed to set window expiry in redis"
)

// RedisLimiter реализует фиксированное окно: INCR по ключу и срок жизни, равный окну.
type RedisLimiter struct {
	client redis.Cmdable
	limit  int
	window time.Duration
}

// NewRedisLimiter создает ограничитель на limit запросов за window.
func NewRedisLimiter(client redis.Cmdable, limit int, window time.Duration) ratelimit.Limiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

// Allow учитывает запрос и сообщает, укладывается ли он в лимит.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (ratelimit.Result, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodAllow), zap.String("key", key))
	redisKey := keyPrefix + key

	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := l.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		ttl = pipe.PTTL(ctx, redisKey)
		return nil
	})
	if err != nil {
		log.Error(ctx, ErrorFailedToCount, zap.Error(err))
		return ratelimit.Result{}, fmt.Errorf("%s: %w", ErrorFailedToCount, err)
	}

	count := incr.Val()
	resetAfter := ttl.Val()

	// Окно открывается первым запросом; ключ без срока жизни тоже получает окно.
	if count == 1 || resetAfter < 0 {
		if err := l.client.PExpire(ctx, redisKey, l.window).Err(); err != nil {
			log.Error(ctx, ErrorFailedToExpire, zap.Error(err))
			return ratelimit.Result{}, fmt.Errorf("%s: %w", ErrorFailedToExpire, err)
		}
		resetAfter = l.window
	}

	remaining := l.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return ratelimit.Result{
		Allowed:    count <= int64(l.limit),
		Limit:      l.limit,
		Remaining:  remaining,
		ResetAfter: resetAfter,
	}, nil
}
