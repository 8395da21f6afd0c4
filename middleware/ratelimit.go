package middleware

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/healthtrack/treatment-tracker/config"
	"github.com/healthtrack/treatment-tracker/util"
)

const (
	defaultRateLimit  = 30          // 30 requests
	defaultRateWindow = time.Minute // per minute
)

// RateLimitConfig holds configuration for rate limiting.
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

// RateLimiter creates a per-IP fixed-window rate limiting middleware for
// mutating endpoints. Fails open when Redis is unavailable.
func RateLimiter(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limit == 0 {
		cfg.Limit = defaultRateLimit
	}
	if cfg.Window == 0 {
		cfg.Window = defaultRateWindow
	}

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		key := fmt.Sprintf("ratelimit:%s:%s", c.Request.URL.Path, clientIP)

		allowed, err := checkRateLimit(key, cfg.Limit, cfg.Window)
		if err != nil {
			log.Printf("rate limit check failed for %s: %v", clientIP, err)
			c.Next()
			return
		}

		if !allowed {
			util.CallRateLimited(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

// checkRateLimit reports whether a request under key is within limit for
// the current window.
func checkRateLimit(key string, limit int, window time.Duration) (bool, error) {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return true, nil
	}

	ctx := context.Background()

	pipe := rdb.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return false, fmt.Errorf("failed to check rate limit: %w", err)
	}

	return incrCmd.Val() <= int64(limit), nil
}
