package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// OrderFilter narrows an order listing. Zero values mean no restriction.
type OrderFilter struct {
	Status      OrderStatus
	ClientPhone string
	// From is inclusive, To is exclusive
	From *time.Time
	To   *time.Time
}

// OrderRepository defines persistence for orders.
// Every method is scoped to one seller.
type OrderRepository interface {
	FindByID(ctx context.Context, sellerID shared.SellerID, id uuid.UUID) (*Order, error)
	// FindAll returns orders newest first
	FindAll(ctx context.Context, sellerID shared.SellerID, filter OrderFilter) ([]*Order, error)
	Create(ctx context.Context, order *Order) error
	// UpdateStatus writes the status field only
	UpdateStatus(ctx context.Context, order *Order) error
}
