package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTestTracer sets up a test tracer provider and returns the span recorder.
func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	t.Cleanup(func() {
		_ = tp.Shutdown(t.Context())
	})

	return sr
}

func spanAttributes(span sdktrace.ReadOnlySpan) map[attribute.Key]string {
	attrs := make(map[attribute.Key]string)
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value.Emit()
	}
	return attrs
}

func TestTracing_Disabled(t *testing.T) {
	sr := setupTestTracer(t)
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Tracing("storefront-test", false))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sr.Ended())
}

func TestTracing_SpanNamedAfterRoute(t *testing.T) {
	sr := setupTestTracer(t)
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Tracing("storefront-test", true))
	router.GET("/api/v1/shops/:sellerId", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/shops/ABC1234", nil))

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Name(), "/api/v1/shops/:sellerId")
}

func TestTracingAttributes(t *testing.T) {
	sr := setupTestTracer(t)
	gin.SetMode(gin.TestMode)

	principal := identity.Principal{
		UserID:   uuid.New(),
		Role:     identity.RoleSellerAdmin,
		SellerID: shared.MustParseSellerID("ABC1234"),
	}

	router := gin.New()
	router.Use(RequestID(), Tracing("storefront-test", true))
	router.Use(func(c *gin.Context) {
		c.Set(PrincipalKey, principal)
		c.Next()
	})
	router.Use(SellerScope(), TracingAttributes())
	router.GET("/api/v1/admin/orders", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders", nil)
	req.Header.Set(RequestIDHeader, "req-trace-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	spans := sr.Ended()
	require.Len(t, spans, 1)

	assert.Equal(t, spans[0].SpanContext().TraceID().String(), w.Header().Get(TraceIDHeader))
	attrs := spanAttributes(spans[0])
	assert.Equal(t, "req-trace-1", attrs["request_id"])
	assert.Equal(t, principal.UserID.String(), attrs["user_id"])
	assert.Equal(t, "seller_admin", attrs["user_role"])
	assert.Equal(t, "ABC1234", attrs["seller_id"])
}

func TestProfilingLabels(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		router := gin.New()
		router.Use(ProfilingLabels(enabled))
		var route string
		var found bool
		router.GET("/api/v1/admin/orders/:id", func(c *gin.Context) {
			route, found = pprof.Label(c.Request.Context(), "route")
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders/42", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, enabled, found)
		if enabled {
			assert.Equal(t, "/api/v1/admin/orders/:id", route)
		}
	}
}
