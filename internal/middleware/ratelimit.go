package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/emre/smartportal/internal/app/models/dto"
	"github.com/emre/smartportal/internal/pkg/logger"
)

// RateLimiter throttles attendance marking per student using a fixed
// one-minute window counter in Redis. The marking endpoint accepts PIN
// guesses, so without a cap a scripted client could walk the 6-digit
// space well inside the 10-minute validity.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewRateLimiter creates a new rate limiter allowing perMinute marking
// attempts per user.
func NewRateLimiter(client *redis.Client, perMinute int) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  perMinute,
		window: time.Minute,
	}
}

// LimitMarking enforces the per-user cap. Must run after JWTAuth. If
// Redis is unreachable the request is let through; availability of
// marking wins over the brute-force guard.
func (l *RateLimiter) LimitMarking() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:marking:%d", userID)
		count, err := l.client.Incr(c.Request.Context(), key).Result()
		if err != nil {
			logger.Warn().Err(err).Msg("Rate limiter unavailable, allowing request")
			c.Next()
			return
		}
		if count == 1 {
			l.client.Expire(c.Request.Context(), key, l.window)
		}

		if count > int64(l.limit) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeRateLimited, "Too many marking attempts")
			errorDetail = errorDetail.WithDetails("Wait a minute before trying again")

			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}
