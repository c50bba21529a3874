package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const complaintWindow = 24 * time.Hour

// ComplaintRateLimiter caps how many complaints a resident may file per day.
// The counter for each resident lives under "<prefix>:<user id>" and expires a
// day after the first complaint of the window.
func ComplaintRateLimiter(rdb redis.Cmdable, prefix string, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
			return
		}

		ctx := c.Request.Context()
		userKey := prefix + ":" + actor.UserID.Hex()

		count, err := rdb.Incr(ctx, userKey).Result()
		if err != nil {
			slog.Error("Redis error incrementing complaint count", "key", userKey, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "redis error incrementing count"})
			return
		}

		// Set TTL only for the first increment
		if count == 1 {
			if err := rdb.Expire(ctx, userKey, complaintWindow).Err(); err != nil {
				slog.Error("Redis error setting complaint TTL", "key", userKey, "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "redis error setting TTL"})
				return
			}
		}

		if count > int64(limit) {
			retryAfter, _ := rdb.TTL(ctx, userKey).Result()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter.Seconds(),
			})
			return
		}

		c.Next()
	}
}
