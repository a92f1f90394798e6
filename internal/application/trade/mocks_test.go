package trade

import (
	"context"

	"github.com/google/uuid"
	appshared "github.com/storefront/backend/internal/application/shared"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/partner"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of trade.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, sellerID shared.SellerID, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, sellerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, sellerID shared.SellerID, filter trade.OrderFilter) ([]*trade.Order, error) {
	args := m.Called(ctx, sellerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, order *trade.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, order *trade.Order) error {
	return m.Called(ctx, order).Error(0)
}

// MockClientRepository is a mock implementation of partner.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByPhone(ctx context.Context, sellerID shared.SellerID, phone string) (*partner.Client, error) {
	args := m.Called(ctx, sellerID, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context, sellerID shared.SellerID, filter partner.ClientFilter) ([]*partner.Client, error) {
	args := m.Called(ctx, sellerID, filter)
	return args.Get(0).([]*partner.Client), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *partner.Client) error {
	return m.Called(ctx, client).Error(0)
}

// MockSellerRepository is a mock implementation of identity.SellerRepository
type MockSellerRepository struct {
	mock.Mock
}

func (m *MockSellerRepository) FindByID(ctx context.Context, id shared.SellerID) (*identity.Seller, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Seller), args.Error(1)
}

func (m *MockSellerRepository) FindAll(ctx context.Context) ([]*identity.Seller, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*identity.Seller), args.Error(1)
}

func (m *MockSellerRepository) ExistsByID(ctx context.Context, id shared.SellerID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockSellerRepository) Create(ctx context.Context, seller *identity.Seller) error {
	return m.Called(ctx, seller).Error(0)
}

func (m *MockSellerRepository) Save(ctx context.Context, seller *identity.Seller) error {
	return m.Called(ctx, seller).Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, sellerID shared.SellerID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, sellerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, sellerID shared.SellerID, filter catalog.ProductFilter) ([]*catalog.Product, error) {
	args := m.Called(ctx, sellerID, filter)
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, sellerID shared.SellerID, id uuid.UUID) error {
	return m.Called(ctx, sellerID, id).Error(0)
}

// MockCartRepository is a mock implementation of trade.CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Load(ctx context.Context, sellerID shared.SellerID, phone string) (*trade.Cart, error) {
	args := m.Called(ctx, sellerID, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Cart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, phone string, cart *trade.Cart) error {
	return m.Called(ctx, phone, cart).Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, sellerID shared.SellerID, phone string) error {
	return m.Called(ctx, sellerID, phone).Error(0)
}

// MockOrderMetrics is a mock implementation of OrderMetrics
type MockOrderMetrics struct {
	mock.Mock
}

func (m *MockOrderMetrics) RecordOrderPlaced(ctx context.Context, sellerID string, total int64) {
	m.Called(ctx, sellerID, total)
}

func (m *MockOrderMetrics) RecordStatusChanged(ctx context.Context, sellerID, status string) {
	m.Called(ctx, sellerID, status)
}

// fakeTxScope runs the unit of work against mock repositories and keeps the
// events saved to the outbox only when the work succeeds
type fakeTxScope struct {
	sellers   *MockSellerRepository
	clients   *MockClientRepository
	orders    *MockOrderRepository
	pending   []shared.DomainEvent
	committed []shared.DomainEvent
}

func newFakeTxScope() *fakeTxScope {
	return &fakeTxScope{
		sellers: new(MockSellerRepository),
		clients: new(MockClientRepository),
		orders:  new(MockOrderRepository),
	}
}

func (f *fakeTxScope) Execute(_ context.Context, fn func(appshared.TransactionalRepositories) error) error {
	f.pending = nil
	if err := fn(f); err != nil {
		return err
	}
	f.committed = append(f.committed, f.pending...)
	return nil
}

func (f *fakeTxScope) Sellers() identity.SellerRepository { return f.sellers }
func (f *fakeTxScope) Users() identity.UserRepository     { return nil }
func (f *fakeTxScope) Clients() partner.ClientRepository  { return f.clients }
func (f *fakeTxScope) Orders() trade.OrderRepository      { return f.orders }

func (f *fakeTxScope) SaveEvents(_ context.Context, events ...shared.DomainEvent) error {
	f.pending = append(f.pending, events...)
	return nil
}
