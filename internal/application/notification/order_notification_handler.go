package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// Notification recipients
const (
	RecipientShopper = "shopper"
	RecipientSeller  = "seller"
)

// Outcomes recorded for each notification attempt. A refused relay call is
// recorded with its reason instead.
const (
	OutcomeSent      = "sent"
	OutcomeRejected  = "rejected"
	OutcomeError     = "error"
	OutcomeDuplicate = "duplicate"
)

// NotificationMetrics records notification outcomes
type NotificationMetrics interface {
	RecordNotification(ctx context.Context, recipient, outcome string)
}

// OrderNotificationHandler turns order events delivered by the outbox into
// text messages for the shopper and the seller.
//
// Refusals by the relay and gateway errors are logged and dropped. Transport
// failures are returned so the outbox retries; messages already sent for the
// event are not sent again.
type OrderNotificationHandler struct {
	relay       *RelayService
	sellerRepo  identity.SellerRepository
	texts       *Texts
	idempotency shared.IdempotencyStore
	metrics     NotificationMetrics
	logger      *zap.Logger
}

// NewOrderNotificationHandler creates a new OrderNotificationHandler
func NewOrderNotificationHandler(
	relay *RelayService,
	sellerRepo identity.SellerRepository,
	texts *Texts,
	idempotency shared.IdempotencyStore,
	logger *zap.Logger,
) *OrderNotificationHandler {
	return &OrderNotificationHandler{
		relay:       relay,
		sellerRepo:  sellerRepo,
		texts:       texts,
		idempotency: idempotency,
		logger:      logger,
	}
}

// SetMetrics sets the metrics recorder
func (h *OrderNotificationHandler) SetMetrics(m NotificationMetrics) {
	h.metrics = m
}

// EventTypes returns the event types this handler is interested in
func (h *OrderNotificationHandler) EventTypes() []string {
	return []string{trade.EventTypeOrderPlaced, trade.EventTypeOrderStatusChanged}
}

// Handle sends the notifications of one order event
func (h *OrderNotificationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *trade.OrderPlacedEvent:
		return h.handleOrderPlaced(ctx, e)
	case *trade.OrderStatusChangedEvent:
		return h.handleStatusChanged(ctx, e)
	default:
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}
}

func (h *OrderNotificationHandler) handleOrderPlaced(ctx context.Context, e *trade.OrderPlacedEvent) error {
	sellerID := e.TenantID().String()
	shopperErr := h.notify(ctx, e, RecipientShopper, e.ClientPhone,
		h.texts.OrderReceivedShopper(sellerID, e.ClientPhone, e.Reference))

	seller, err := h.sellerRepo.FindByID(ctx, e.TenantID())
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.logger.Warn("Seller of order not found, skipping seller notification",
				zap.String("seller_id", sellerID),
				zap.String("reference", e.Reference))
			return shopperErr
		}
		return errors.Join(shopperErr, err)
	}
	sellerErr := h.notify(ctx, e, RecipientSeller, seller.Phone, h.texts.OrderReceivedSeller(e.Reference))
	return errors.Join(shopperErr, sellerErr)
}

func (h *OrderNotificationHandler) handleStatusChanged(ctx context.Context, e *trade.OrderStatusChangedEvent) error {
	return h.notify(ctx, e, RecipientShopper, e.ClientPhone, h.texts.StatusChanged(e.Reference, e.Status))
}

// notify sends one message at most once per event and recipient
func (h *OrderNotificationHandler) notify(ctx context.Context, event shared.DomainEvent, recipient, phone, text string) error {
	key := event.EventID().String() + ":" + recipient
	logger := h.logger.With(
		zap.String("seller_id", event.TenantID().String()),
		zap.String("event_type", event.EventType()),
		zap.String("recipient", recipient),
	)

	if h.idempotency != nil {
		done, err := h.idempotency.IsProcessed(ctx, key)
		if err != nil {
			logger.Warn("Idempotency check failed, sending anyway", zap.Error(err))
		} else if done {
			h.record(ctx, recipient, OutcomeDuplicate)
			return nil
		}
	}

	result, err := h.relay.Send(ctx, RelayRequest{
		SellerID: event.TenantID().String(),
		Phone:    phone,
		Text:     text,
	})
	if err != nil {
		h.record(ctx, recipient, OutcomeError)
		return fmt.Errorf("notify %s: %w", recipient, err)
	}

	switch {
	case result.Reason != "":
		logger.Info("Notification not sent", zap.String("reason", result.Reason))
		h.record(ctx, recipient, result.Reason)
		return nil
	case !result.Success:
		logger.Warn("Notification rejected by gateway",
			zap.Int("status", result.Status),
			zap.String("body", result.Body))
		h.record(ctx, recipient, OutcomeRejected)
		return nil
	}

	logger.Info("Notification sent")
	h.record(ctx, recipient, OutcomeSent)
	if h.idempotency != nil {
		if _, err := h.idempotency.MarkProcessed(ctx, key, shared.DefaultIdempotencyTTL); err != nil {
			logger.Warn("Failed to record sent notification", zap.Error(err))
		}
	}
	return nil
}

func (h *OrderNotificationHandler) record(ctx context.Context, recipient, outcome string) {
	if h.metrics != nil {
		h.metrics.RecordNotification(ctx, recipient, outcome)
	}
}

// Ensure OrderNotificationHandler implements shared.EventHandler
var _ shared.EventHandler = (*OrderNotificationHandler)(nil)
