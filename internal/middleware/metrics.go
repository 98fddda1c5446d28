package middleware

import (
	"time"

	"github.com/SscSPs/erp_ledger/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// HTTPMetricsMiddleware records request count and latency per matched route.
func HTTPMetricsMiddleware(m *metrics.HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
