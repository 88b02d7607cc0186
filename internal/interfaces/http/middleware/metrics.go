package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tasknest/tasknest/internal/infrastructure/metrics"
)

// Metrics records request counts and latency per route template.
func Metrics(registry *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method

		registry.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		registry.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
