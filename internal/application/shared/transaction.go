// Package shared holds application-level contracts used by several services.
package shared

import (
	"context"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/partner"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
)

// TransactionScope runs a unit of work atomically.
// If fn returns an error every write made through repos is rolled back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories bound to one transaction
type TransactionalRepositories interface {
	Sellers() identity.SellerRepository
	Users() identity.UserRepository
	Clients() partner.ClientRepository
	Orders() trade.OrderRepository
	// SaveEvents stores domain events in the outbox within the transaction
	SaveEvents(ctx context.Context, events ...shared.DomainEvent) error
}
