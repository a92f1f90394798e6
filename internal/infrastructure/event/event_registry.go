package event

import (
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
)

// RegisterAllEvents registers every event type written to the outbox so the
// processor can decode them
func RegisterAllEvents(serializer *EventSerializer) {
	serializer.Register(trade.EventTypeOrderPlaced, func() shared.DomainEvent {
		return &trade.OrderPlacedEvent{}
	})
	serializer.Register(trade.EventTypeOrderStatusChanged, func() shared.DomainEvent {
		return &trade.OrderStatusChangedEvent{}
	})
}
