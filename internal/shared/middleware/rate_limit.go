package middleware

import (
	"context"
	"math"
	"strconv"

	"books-api/internal/infrastructure/cache"
	"books-api/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RateLimiter counts requests per subject. Implemented by cache.RedisRateLimiter.
type RateLimiter interface {
	Allow(ctx context.Context, subject string) (cache.RateDecision, error)
}

// RateLimit limits each client IP. When the limiter itself fails the request
// is let through and the failure logged.
func RateLimit(limiter RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warn().
				Err(err).
				Str("request_id", c.GetString(RequestIDKey)).
				Msg("rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(decision.ResetIn.Seconds()))))
			response.TooManyRequests(c, "Too many requests")
			return
		}

		c.Next()
	}
}
