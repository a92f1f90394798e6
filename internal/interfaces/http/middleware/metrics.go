package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// unmatchedRoute labels requests that matched no route
const unmatchedRoute = "unmatched"

// HTTPMetricsRecorder records served requests
type HTTPMetricsRecorder interface {
	RecordHTTPRequest(ctx context.Context, method, route string, status int, d time.Duration)
}

// HTTPMetrics records request count and latency per method, route pattern
// and status. A nil recorder disables it.
func HTTPMetrics(recorder HTTPMetricsRecorder) gin.HandlerFunc {
	if recorder == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// route pattern, not the raw path, keeps label cardinality bounded
		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		recorder.RecordHTTPRequest(c.Request.Context(), c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
