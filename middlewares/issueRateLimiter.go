package middlewares

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// limiterKey buckets by the authenticated user id when present, otherwise by
// the client IP.
func limiterKey(c *gin.Context) string {
	if identity := IdentityFrom(c); identity != nil {
		return "issue_limit:" + identity.ID
	}
	return "issue_limit:" + c.ClientIP()
}

// IssueRateLimiter caps how many issues a caller may create per day. A nil
// client disables the limiter.
func IssueRateLimiter(client *redis.Client, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil {
			c.Next()
			return
		}

		key := limiterKey(c)

		ctx := c.Request.Context()
		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "redis error incrementing count"})
			c.Abort()
			return
		}

		// Set TTL only for the first increment (when count = 1)
		if count == 1 {
			if err := client.Expire(ctx, key, 24*time.Hour).Err(); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "redis error setting TTL"})
				c.Abort()
				return
			}
		}

		if count > int64(limit) {
			retryAfter, _ := client.TTL(ctx, key).Result()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
