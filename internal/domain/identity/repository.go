package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// SellerRepository defines persistence for sellers
type SellerRepository interface {
	// FindByID returns shared.ErrNotFound when the seller does not exist
	FindByID(ctx context.Context, id shared.SellerID) (*Seller, error)
	// FindAll is the only cross-tenant scan, reserved to super admins
	FindAll(ctx context.Context) ([]*Seller, error)
	ExistsByID(ctx context.Context, id shared.SellerID) (bool, error)
	// Create inserts a seller with its caller-supplied code
	Create(ctx context.Context, seller *Seller) error
	// Save updates an existing seller
	Save(ctx context.Context, seller *Seller) error
}

// UserRepository defines persistence for administrative users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *User) error
	Save(ctx context.Context, user *User) error
}
