package trade

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderPlaced        = "OrderPlaced"
	EventTypeOrderStatusChanged = "OrderStatusChanged"
)

// OrderPlacedEvent is raised when a client places an order.
// It drives the shopper and seller notifications.
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	Reference   string    `json:"reference"`
	ClientPhone string    `json:"client_phone"`
	ClientName  string    `json:"client_name"`
	Total       int64     `json:"total"`
	ItemCount   int       `json:"item_count"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(order *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, order.ID.String(), order.SellerID),
		OrderID:         order.ID,
		Reference:       order.Reference,
		ClientPhone:     order.ClientPhone,
		ClientName:      order.ClientName(),
		Total:           order.Total,
		ItemCount:       order.ItemCount(),
	}
}

// OrderStatusChangedEvent is raised when an admin sets an order status
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID        uuid.UUID   `json:"order_id"`
	Reference      string      `json:"reference"`
	ClientPhone    string      `json:"client_phone"`
	PreviousStatus OrderStatus `json:"previous_status"`
	Status         OrderStatus `json:"status"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(order *Order, previous OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, order.ID.String(), order.SellerID),
		OrderID:         order.ID,
		Reference:       order.Reference,
		ClientPhone:     order.ClientPhone,
		PreviousStatus:  previous,
		Status:          order.Status,
	}
}
