package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name of business spans
const TracerName = "storefront-backend"

// StartServiceSpan starts a span named "{service}.{method}" on the global
// tracer. The caller must end the span.
//
//	ctx, span := telemetry.StartServiceSpan(ctx, "order", "place", attribute.String("seller_id", id))
//	defer span.End()
func StartServiceSpan(ctx context.Context, service, method string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := otel.GetTracerProvider().Tracer(TracerName)
	return tracer.Start(ctx, fmt.Sprintf("%s.%s", service, method),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// RecordError records an error on the span and sets the span status to error.
func RecordError(span trace.Span, err error) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// EndSpan records err when non-nil and ends the span; meant for defer with a
// named error result
func EndSpan(span trace.Span, err error) {
	RecordError(span, err)
	span.End()
}

// GetTraceID returns the trace ID of the span in ctx, or an empty string
func GetTraceID(ctx context.Context) string {
	traceID := trace.SpanFromContext(ctx).SpanContext().TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}

// Span attribute keys
const (
	SpanAttrSellerID    = "seller_id"
	SpanAttrOrderID     = "order_id"
	SpanAttrReference   = "order_reference"
	SpanAttrOrderStatus = "order_status"
	SpanAttrItemCount   = "item_count"
)
