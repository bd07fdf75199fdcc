package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/subkart/core/internal/pkg/response"
)

// The original deployment limited each IP to 100 requests per 15 minutes.
const (
	rateLimitMax    = 100
	rateLimitWindow = 15 * time.Minute
)

// RateLimit returns a middleware enforcing a fixed-window per-IP limit for
// unauthenticated clients. The counter lives in Redis so the limit holds
// across replicas.
func RateLimit(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsAuthenticated(c) {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		window := time.Now().Unix() / int64(rateLimitWindow.Seconds())
		key := fmt.Sprintf("subkart:rate_limit:%s:%d", ip, window)

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			// rate limiting is best-effort; never block on a redis hiccup
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, rateLimitWindow+time.Second)
		}

		if count > rateLimitMax {
			c.Header("Retry-After", fmt.Sprintf("%d", int(rateLimitWindow.Seconds())))
			response.TooManyRequests(c, "Too many requests from this IP, please try again later")
			return
		}

		c.Next()
	}
}
