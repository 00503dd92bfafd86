package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/class-attendance-api/pkg/errors"
	"github.com/noah-isme/class-attendance-api/pkg/response"
)

// RateLimiter records a hit for key and reports whether it is within limit.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type rateLimitRecorder interface {
	RecordRateLimited(path string)
}

// RateLimit caps requests per client IP and route. Limiter errors let the request through.
func RateLimit(limiter RateLimiter, limit int, window time.Duration, recorder rateLimitRecorder, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		if limiter == nil || limit <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("ip:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := limiter.Allow(c.Request.Context(), key, limit, window)
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			if recorder != nil {
				recorder.RecordRateLimited(c.FullPath())
			}
			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			response.Abort(c, appErrors.ErrTooManyRequests)
			return
		}

		c.Next()
	}
}
