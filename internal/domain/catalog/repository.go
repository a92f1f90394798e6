package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// CategoryRepository defines persistence for categories.
// Every method is scoped to one seller.
type CategoryRepository interface {
	FindByID(ctx context.Context, sellerID shared.SellerID, id uuid.UUID) (*Category, error)
	FindAll(ctx context.Context, sellerID shared.SellerID) ([]*Category, error)
	Create(ctx context.Context, category *Category) error
	Save(ctx context.Context, category *Category) error
	// Delete removes the category only; products keep their category id
	Delete(ctx context.Context, sellerID shared.SellerID, id uuid.UUID) error
}

// ProductFilter narrows a product listing
type ProductFilter struct {
	CategoryID *uuid.UUID
}

// ProductRepository defines persistence for products.
// Every method is scoped to one seller.
type ProductRepository interface {
	FindByID(ctx context.Context, sellerID shared.SellerID, id uuid.UUID) (*Product, error)
	// FindAll returns products in creation order
	FindAll(ctx context.Context, sellerID shared.SellerID, filter ProductFilter) ([]*Product, error)
	Create(ctx context.Context, product *Product) error
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, sellerID shared.SellerID, id uuid.UUID) error
}
