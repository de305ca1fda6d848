package ratelimit

import (
	"context"
	"time"
)

// RateLimitConfig sets the per-window ceilings; a zero limit disables that window.
type RateLimitConfig struct {
	RequestsPerMinute int
	RequestsPerHour   int
	RequestsPerDay    int
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, config RateLimitConfig) (bool, error)
	Reset(ctx context.Context, key string) error
}

type window struct {
	duration time.Duration
	limit    int
}

func (c RateLimitConfig) windows() []window {
	return []window{
		{time.Minute, c.RequestsPerMinute},
		{time.Hour, c.RequestsPerHour},
		{24 * time.Hour, c.RequestsPerDay},
	}
}
