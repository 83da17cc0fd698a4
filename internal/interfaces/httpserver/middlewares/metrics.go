package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"mert-chat/internal/infrastructure/metrics"
)

// MetricsMiddleware records HTTP request metrics
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		metrics.RecordRequest(c.Request.Method, routeOf(c), strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
		metrics.RecordUserAgent(c.Request.UserAgent())
	}
}
