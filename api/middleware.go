package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SylvanB/meme.crabenjoyer.xyz/metrics"
)

// PrometheusMiddleware records request counts and latencies per route.
func PrometheusMiddleware(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		statusCode := strconv.Itoa(c.Writer.Status())

		metrics.OpsRequestsTotal.WithLabelValues(method, path, statusCode, serviceName).Inc()
		metrics.OpsRequestDuration.WithLabelValues(method, path, serviceName).Observe(time.Since(start).Seconds())
	}
}
