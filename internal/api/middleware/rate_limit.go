package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/truongminh05/VCI-Web/pkg/redis"
	"github.com/truongminh05/VCI-Web/pkg/response"
)

// RateLimit is a Redis sliding-window limit per client IP and route.
// A nil client or a Redis failure lets the request through.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("vci:rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 10004, "Bạn thao tác quá nhanh, vui lòng thử lại sau.")
			c.Abort()
			return
		}

		c.Next()
	}
}
