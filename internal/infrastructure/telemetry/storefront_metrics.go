package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics recorder is built without a meter
var ErrMeterNil = errors.New("meter cannot be nil")

// StorefrontMetrics records the business and HTTP metrics of the service
type StorefrontMetrics struct {
	ordersPlaced    *Counter
	orderAmount     *Counter
	statusChanges   *Counter
	notifications   *Counter
	requestTotal    *Counter
	requestDuration *Histogram
}

// NewStorefrontMetrics creates every instrument on the meter
func NewStorefrontMetrics(meter metric.Meter) (*StorefrontMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	m := &StorefrontMetrics{}
	var err error

	if m.ordersPlaced, err = NewCounter(meter, "storefront_orders_placed_total",
		"Total number of orders placed by clients", "{orders}"); err != nil {
		return nil, err
	}
	if m.orderAmount, err = NewCounter(meter, "storefront_order_amount_total",
		"Sum of placed order totals in currency units", "{units}"); err != nil {
		return nil, err
	}
	if m.statusChanges, err = NewCounter(meter, "storefront_order_status_changes_total",
		"Total number of order status updates", "{updates}"); err != nil {
		return nil, err
	}
	if m.notifications, err = NewCounter(meter, "storefront_notifications_total",
		"Notification relay attempts by recipient and outcome", "{messages}"); err != nil {
		return nil, err
	}
	if m.requestTotal, err = NewCounter(meter, "http_server_request_total",
		"Total number of HTTP requests", "{request}"); err != nil {
		return nil, err
	}
	if m.requestDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "http_server_request_duration_seconds",
		Description: "HTTP request latency distribution in seconds",
		Unit:        "s",
		Boundaries:  HTTPDurationBuckets,
	}); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordOrderPlaced counts a placed order and its total
func (m *StorefrontMetrics) RecordOrderPlaced(ctx context.Context, sellerID string, total int64) {
	m.ordersPlaced.Inc(ctx, AttrSellerID.String(sellerID))
	m.orderAmount.Add(ctx, total, AttrSellerID.String(sellerID))
}

// RecordStatusChanged counts an order status update
func (m *StorefrontMetrics) RecordStatusChanged(ctx context.Context, sellerID, status string) {
	m.statusChanges.Inc(ctx, AttrSellerID.String(sellerID), AttrOrderStatus.String(status))
}

// RecordNotification counts one relay attempt. outcome is "sent", a relay
// reason such as "no_credentials", "rejected" or "error".
func (m *StorefrontMetrics) RecordNotification(ctx context.Context, recipient, outcome string) {
	m.notifications.Inc(ctx, AttrRecipient.String(recipient), AttrOutcome.String(outcome))
}

// RecordHTTPRequest records one served request
func (m *StorefrontMetrics) RecordHTTPRequest(ctx context.Context, method, route string, status int, d time.Duration) {
	m.requestTotal.Inc(ctx, AttrHTTPMethod.String(method), AttrHTTPRoute.String(route), AttrHTTPStatusCode.Int(status))
	m.requestDuration.RecordDuration(ctx, d, AttrHTTPMethod.String(method), AttrHTTPRoute.String(route))
}
