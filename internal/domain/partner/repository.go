package partner

import (
	"context"

	"github.com/storefront/backend/internal/domain/shared"
)

// ClientFilter narrows a client listing
type ClientFilter struct {
	// Search matches the name case-insensitively or the phone as a substring
	Search string
}

// ClientRepository defines persistence for clients.
// Every method is scoped to one seller.
type ClientRepository interface {
	// FindByPhone returns shared.ErrNotFound when the shopper is unknown
	FindByPhone(ctx context.Context, sellerID shared.SellerID, phone string) (*Client, error)
	FindAll(ctx context.Context, sellerID shared.SellerID, filter ClientFilter) ([]*Client, error)
	// Save inserts or replaces the client under its derived id
	Save(ctx context.Context, client *Client) error
}
