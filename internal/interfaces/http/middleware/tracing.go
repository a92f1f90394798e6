package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Tracing returns OpenTelemetry tracing middleware. Spans are named after the
// route pattern, e.g. "GET /api/v1/admin/orders/:id". Disabled tracing
// returns a no-op middleware.
func Tracing(serviceName string, enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return otelgin.Middleware(serviceName)
}

// TraceIDHeader echoes the trace id so a failing call can be looked up
const TraceIDHeader = "X-Trace-ID"

// TracingAttributes adds request, user and seller ids to the current span and
// returns the trace id in a response header.
// Place it after the JWT and seller middleware of a route group.
func TracingAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		if traceID := telemetry.GetTraceID(c.Request.Context()); traceID != "" {
			c.Header(TraceIDHeader, traceID)
		}
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			if id := c.GetString(RequestIDKey); id != "" {
				span.SetAttributes(attribute.String("request_id", id))
			}
			if p, ok := GetPrincipal(c); ok {
				span.SetAttributes(
					attribute.String("user_id", p.UserID.String()),
					attribute.String("user_role", string(p.Role)),
				)
			}
			if sellerID, ok := GetSellerID(c); ok {
				span.SetAttributes(attribute.String("seller_id", sellerID.String()))
			}
		}
		c.Next()
	}
}

// ProfilingLabels tags the CPU samples of each request with its route
// pattern and method. Disabled profiling returns a no-op middleware.
func ProfilingLabels(enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		labels := map[string]string{
			"route":  c.FullPath(),
			"method": c.Request.Method,
		}
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
