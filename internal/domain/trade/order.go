package trade

import (
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// OrderStatus represents the status of a client order.
// Any status may follow any other; there is no state machine.
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusProcessed  OrderStatus = "processed"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefused    OrderStatus = "refused"
)

// AllOrderStatuses lists the closed set of statuses
var AllOrderStatuses = []OrderStatus{
	OrderStatusProcessing,
	OrderStatusProcessed,
	OrderStatusCancelled,
	OrderStatusRefused,
}

// IsValid checks if the status is a known value
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusProcessed, OrderStatusCancelled, OrderStatusRefused:
		return true
	}
	return false
}

// String returns the string representation
func (s OrderStatus) String() string {
	return string(s)
}

// Domain errors raised by orders and carts
var (
	ErrInvalidStatus      = shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	ErrEmptyOrder         = shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	ErrInvalidQuantity    = shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	ErrTotalMismatch      = shared.NewDomainError("TOTAL_MISMATCH", "Order total does not match its items")
	ErrClientNameRequired = shared.NewDomainError("CLIENT_NAME_REQUIRED", "Client name is required")
	ErrDeliveryIncomplete = shared.NewDomainError("DELIVERY_INCOMPLETE", "Delivery location and date are required")
	ErrProductUnavailable = shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product is out of stock")
	ErrCartLineNotFound   = shared.NewDomainError("CART_LINE_NOT_FOUND", "Product is not in the cart")
	ErrProductOtherSeller = shared.NewDomainError("PRODUCT_OTHER_SELLER", "Product belongs to another seller")
	ErrInvalidReference   = shared.NewDomainError("INVALID_REFERENCE", "Order reference is malformed")
)

// OrderItem is a denormalized snapshot of a product at order time
type OrderItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Price     int64     `json:"price"`
}

// Subtotal returns price times quantity
func (i OrderItem) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

// ComputeTotal sums the subtotals of items
func ComputeTotal(items []OrderItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}

// DeliveryDetails is the delivery form submitted with an order
type DeliveryDetails struct {
	Name          string           `json:"name"`
	FirstName     string           `json:"first_name"`
	Phone         string           `json:"phone"`
	SecondContact string           `json:"second_contact"`
	Location      string           `json:"location"`
	Date          string           `json:"date"`
	TimeSlot      string           `json:"time_slot"`
	Details       string           `json:"details"`
	GPS           *shared.GeoPoint `json:"gps,omitempty"`
}

func (d DeliveryDetails) normalized() DeliveryDetails {
	d.Name = strings.TrimSpace(d.Name)
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.Phone = shared.NormalizePhone(d.Phone)
	d.SecondContact = shared.NormalizePhone(d.SecondContact)
	d.Location = strings.TrimSpace(d.Location)
	d.Date = strings.TrimSpace(d.Date)
	d.TimeSlot = strings.TrimSpace(d.TimeSlot)
	d.Details = strings.TrimSpace(d.Details)
	return d
}

// Order is a client order placed with one seller
type Order struct {
	shared.TenantEntity
	Reference   string
	ClientPhone string
	Items       []OrderItem
	Total       int64
	Status      OrderStatus
	Delivery    DeliveryDetails
}

// NewOrderParams carries the inputs of NewOrder.
// Total is the amount computed by the client and must equal the sum of items.
type NewOrderParams struct {
	ClientPhone string
	Items       []OrderItem
	Total       int64
	Delivery    DeliveryDetails
	Reference   string
}

// NewOrder creates an order in processing status and records an OrderPlaced event
func NewOrder(sellerID shared.SellerID, params NewOrderParams) (*Order, error) {
	if err := shared.RequireSeller(sellerID); err != nil {
		return nil, err
	}
	phone := shared.NormalizePhone(params.ClientPhone)
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Client phone is required")
	}
	if !ReferencePattern.MatchString(params.Reference) {
		return nil, ErrInvalidReference
	}
	if len(params.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	items := make([]OrderItem, len(params.Items))
	for i, item := range params.Items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if item.Price < 0 {
			return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
		}
		item.Name = strings.TrimSpace(item.Name)
		items[i] = item
	}
	if ComputeTotal(items) != params.Total {
		return nil, ErrTotalMismatch
	}

	delivery := params.Delivery.normalized()
	if delivery.Name == "" {
		return nil, ErrClientNameRequired
	}
	if delivery.Location == "" || delivery.Date == "" {
		return nil, ErrDeliveryIncomplete
	}
	if delivery.Phone == "" {
		delivery.Phone = phone
	}
	if delivery.GPS != nil {
		if err := delivery.GPS.Validate(); err != nil {
			return nil, err
		}
	}

	order := &Order{
		TenantEntity: shared.NewTenantEntity(sellerID),
		Reference:    params.Reference,
		ClientPhone:  phone,
		Items:        items,
		Total:        params.Total,
		Status:       OrderStatusProcessing,
		Delivery:     delivery,
	}
	order.AddDomainEvent(NewOrderPlacedEvent(order))
	return order, nil
}

// ChangeStatus sets a new status without checking the previous one and
// records an OrderStatusChanged event
func (o *Order) ChangeStatus(status OrderStatus) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	previous := o.Status
	o.Status = status
	o.Touch()
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, previous))
	return nil
}

// ItemCount returns the total quantity across items
func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

// ClientName returns the name given on the delivery form
func (o *Order) ClientName() string {
	return strings.TrimSpace(o.Delivery.FirstName + " " + o.Delivery.Name)
}
