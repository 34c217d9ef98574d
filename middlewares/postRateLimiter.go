package middlewares

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"servedc-be/config"

	"github.com/gin-gonic/gin"
)

// PostLimit reads POST_RATE_LIMIT, the number of posts a client may create
// per 24 hours. Defaults to 20.
func PostLimit() int {
	if v := os.Getenv("POST_RATE_LIMIT"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			return limit
		}
	}
	return 20
}

// PostRateLimiter caps announcement creation per client IP. Without a
// configured Redis the limiter is a pass-through so the app stays usable
// with zero external services; Redis errors also fail open since limiting
// is a protection, not a feature.
func PostRateLimiter(limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.RedisClient == nil {
			c.Next()
			return
		}

		ctx := config.Ctx
		userKey := "post_limit:" + c.ClientIP()

		// Increment the client's count with TTL
		count, err := config.RedisClient.Incr(ctx, userKey).Result()
		if err != nil {
			log.Printf("redis error incrementing count: %v", err)
			c.Next()
			return
		}

		// Set TTL only for the first increment (when count = 1)
		if count == 1 {
			if err := config.RedisClient.Expire(ctx, userKey, 24*time.Hour).Err(); err != nil {
				log.Printf("redis error setting TTL: %v", err)
			}
		}

		if count > int64(limit) {
			retryAfter, _ := config.RedisClient.TTL(ctx, userKey).Result()
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
