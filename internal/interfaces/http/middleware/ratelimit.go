package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nitrodesk/nitrodesk/internal/infrastructure/ratelimit"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
	"github.com/nitrodesk/nitrodesk/internal/shared/utils"
)

// RateLimiter throttles the endpoints that call Discord, keyed by scope and client IP.
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	config  ratelimit.RateLimitConfig
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.RateLimiter, config ratelimit.RateLimitConfig, logger logger.Interface) *RateLimiter {
	return &RateLimiter{limiter: limiter, config: config, logger: logger}
}

func (rl *RateLimiter) Limit(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + ":" + c.ClientIP()
		allowed, err := rl.limiter.Allow(c.Request.Context(), key, rl.config)
		if err != nil {
			// Fail open: a broken limiter must not take the admin API down.
			rl.logger.Warnw("rate limiter unavailable", "scope", scope, "error", err)
			c.Next()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
