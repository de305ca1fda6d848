package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client
}

func limiters(t *testing.T) map[string]RateLimiter {
	return map[string]RateLimiter{
		"redis":  NewRedisRateLimiter(setupTestRedis(t)),
		"memory": NewMemoryRateLimiter(),
	}
}

func TestRateLimiter_PerMinute(t *testing.T) {
	for name, limiter := range limiters(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			config := RateLimitConfig{RequestsPerMinute: 3}

			for i := 0; i < 3; i++ {
				allowed, err := limiter.Allow(ctx, "dispatch:admin", config)
				require.NoError(t, err)
				assert.True(t, allowed, "request %d should be allowed", i+1)
			}

			allowed, err := limiter.Allow(ctx, "dispatch:admin", config)
			require.NoError(t, err)
			assert.False(t, allowed)

			allowed, err = limiter.Allow(ctx, "dispatch:other", config)
			require.NoError(t, err)
			assert.True(t, allowed, "keys are independent")

			require.NoError(t, limiter.Reset(ctx, "dispatch:admin"))
			allowed, err = limiter.Allow(ctx, "dispatch:admin", config)
			require.NoError(t, err)
			assert.True(t, allowed)
		})
	}
}

func TestMemoryRateLimiter_WindowSlides(t *testing.T) {
	limiter := NewMemoryRateLimiter()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	ctx := context.Background()
	config := RateLimitConfig{RequestsPerMinute: 1, RequestsPerHour: 2}

	allowed, _ := limiter.Allow(ctx, "k", config)
	assert.True(t, allowed)
	allowed, _ = limiter.Allow(ctx, "k", config)
	assert.False(t, allowed)

	now = now.Add(61 * time.Second)
	allowed, _ = limiter.Allow(ctx, "k", config)
	assert.True(t, allowed)

	now = now.Add(61 * time.Second)
	allowed, _ = limiter.Allow(ctx, "k", config)
	assert.False(t, allowed, "hourly ceiling reached")
}

func TestRateLimiter_ZeroConfigAllowsAll(t *testing.T) {
	limiter := NewMemoryRateLimiter()
	for i := 0; i < 10; i++ {
		allowed, err := limiter.Allow(context.Background(), "k", RateLimitConfig{})
		require.NoError(t, err)
		assert.True(t, allowed)
	}
}
