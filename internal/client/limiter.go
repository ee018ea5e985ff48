package client

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter - ограничение запросов к сервису котировок
type RateLimiter struct {
	limiter *rate.Limiter
	mu      sync.Mutex
	timer   *time.Timer
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
}

func (rl *RateLimiter) Wait(ctx context.Context) error {
	return rl.limiter.Wait(ctx)
}

// Blocked - лимитер закрыт после ответа 429
func (rl *RateLimiter) Blocked() bool {
	return rl.limiter.Limit() == 0
}

// BlockFor - запрет запросов на duration, повторный вызов продлевает блокировку
func (rl *RateLimiter) BlockFor(duration time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.limiter.SetLimit(0)
	if rl.timer != nil {
		rl.timer.Stop()
	}
	rl.timer = time.AfterFunc(duration, func() {
		rl.mu.Lock()
		rl.limiter.SetLimit(rate.Inf)
		rl.mu.Unlock()
	})
}

func ParseRetryAfter(headers http.Header) time.Duration {
	retryAfter := headers.Get("Retry-After")
	if retryAfter == "" {
		return time.Minute
	}

	if seconds, err := strconv.Atoi(retryAfter); err == nil {
		return time.Duration(seconds) * time.Second
	}

	if t, err := http.ParseTime(retryAfter); err == nil {
		return time.Until(t)
	}

	return time.Minute
}
