// Package ratelimit определяет порт ограничения частоты запросов.
package ratelimit

import (
	"context"
	"time"
)

// Result описывает решение по одному запросу.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAfter time.Duration
}

// Limiter считает запросы по ключу в фиксированном окне.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}
