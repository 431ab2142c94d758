package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"dmvcalc/internal/metrics"
)

// Metrics records request latency by matched route and status.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(route, strconv.Itoa(c.Writer.Status()), start)
	}
}
