package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mohi-devhub/genie/internal/logger"
	"github.com/mohi-devhub/genie/internal/ratelimit"
)

// RateLimit throttles requests against the given limiter, keyed by the
// authenticated user when present and the client IP otherwise. Denied
// requests get 429 with the window reset time.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := c.ClientIP()
		if userID, ok := CurrentUserID(c); ok {
			identity = fmt.Sprintf("user:%d", userID)
		}

		res, err := limiter.Check(c.Request.Context(), identity)
		if err != nil {
			// The limiter is a best-effort guard; fail open rather than
			// turning a limiter outage into an API outage.
			logger.Warn("rate limit check failed", "err", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", res.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", res.ResetTime.Unix()))

		if !res.Allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please slow down and try again later.",
			})
			return
		}

		c.Next()
	}
}
