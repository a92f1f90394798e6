package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
)

// OrderItemRequest is one line of an order submitted by the storefront
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Name      string    `json:"name" binding:"required,max=200"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
	Price     int64     `json:"price" binding:"min=0"`
}

// DeliveryRequest is the delivery form filled in by the shopper
type DeliveryRequest struct {
	Name          string           `json:"name" binding:"max=100"`
	FirstName     string           `json:"first_name" binding:"max=100"`
	Phone         string           `json:"phone" binding:"omitempty,phone"`
	SecondContact string           `json:"second_contact" binding:"omitempty,phone"`
	Location      string           `json:"location" binding:"required,max=500"`
	Date          string           `json:"date" binding:"required,max=50"`
	TimeSlot      string           `json:"time_slot" binding:"max=50"`
	Details       string           `json:"details" binding:"max=1000"`
	GPS           *shared.GeoPoint `json:"gps"`
}

// PlaceOrderRequest places an order from explicit items. Total is what the
// storefront displayed; when set it must equal the sum of price times
// quantity, when omitted the server computes it.
type PlaceOrderRequest struct {
	Items    []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Total    *int64             `json:"total" binding:"omitempty,min=0"`
	Delivery DeliveryRequest    `json:"delivery" binding:"required"`
}

// CheckoutRequest places an order from the stored cart
type CheckoutRequest struct {
	Delivery DeliveryRequest `json:"delivery" binding:"required"`
}

// UpdateStatusRequest sets an order status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,orderstatus"`
}

// OrderListFilter narrows the admin order list.
// Range is one of today, week, month or custom (with From and To as YYYY-MM-DD).
type OrderListFilter struct {
	Status string `form:"status" binding:"omitempty,orderstatus"`
	DateRangeFilter
}

// DateRangeFilter selects orders by creation date
type DateRangeFilter struct {
	Range string `form:"range" binding:"omitempty,oneof=all today week month custom"`
	From  string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To    string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID          uuid.UUID             `json:"id"`
	SellerID    string                `json:"seller_id"`
	Reference   string                `json:"reference"`
	ClientPhone string                `json:"client_phone"`
	ClientName  string                `json:"client_name"`
	Items       []trade.OrderItem     `json:"items"`
	ItemCount   int                   `json:"item_count"`
	Total       int64                 `json:"total"`
	Status      string                `json:"status"`
	Delivery    trade.DeliveryDetails `json:"delivery"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// CartResponse represents a shopper cart
type CartResponse struct {
	SellerID string           `json:"seller_id"`
	Phone    string           `json:"phone"`
	Lines    []trade.CartLine `json:"lines"`
	Total    int64            `json:"total"`
	Count    int              `json:"count"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *trade.Order) OrderResponse {
	return OrderResponse{
		ID:          o.ID,
		SellerID:    o.SellerID.String(),
		Reference:   o.Reference,
		ClientPhone: o.ClientPhone,
		ClientName:  o.ClientName(),
		Items:       o.Items,
		ItemCount:   o.ItemCount(),
		Total:       o.Total,
		Status:      o.Status.String(),
		Delivery:    o.Delivery,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// ToOrderResponses converts a slice of orders, keeping their order
func ToOrderResponses(orders []*trade.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = ToOrderResponse(o)
	}
	return responses
}

// ToCartResponse converts a cart to CartResponse
func ToCartResponse(phone string, c *trade.Cart) CartResponse {
	return CartResponse{
		SellerID: c.SellerID().String(),
		Phone:    phone,
		Lines:    c.Lines(),
		Total:    c.Total(),
		Count:    c.Count(),
	}
}

func (r OrderItemRequest) toDomain() trade.OrderItem {
	return trade.OrderItem{
		ProductID: r.ProductID,
		Name:      r.Name,
		Quantity:  r.Quantity,
		Price:     r.Price,
	}
}

func (r DeliveryRequest) toDomain() trade.DeliveryDetails {
	return trade.DeliveryDetails{
		Name:          r.Name,
		FirstName:     r.FirstName,
		Phone:         r.Phone,
		SecondContact: r.SecondContact,
		Location:      r.Location,
		Date:          r.Date,
		TimeSlot:      r.TimeSlot,
		Details:       r.Details,
		GPS:           r.GPS,
	}
}
