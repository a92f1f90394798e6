package identity

import (
	"context"

	"github.com/google/uuid"
	appshared "github.com/storefront/backend/internal/application/shared"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/partner"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/stretchr/testify/mock"
)

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

// fakeTxScope runs the unit of work directly against mock repositories and
// records whether it committed
type fakeTxScope struct {
	sellers   *MockSellerRepository
	users     *MockUserRepository
	committed bool
}

func (f *fakeTxScope) Execute(_ context.Context, fn func(appshared.TransactionalRepositories) error) error {
	if err := fn(f); err != nil {
		return err
	}
	f.committed = true
	return nil
}

func (f *fakeTxScope) Sellers() identity.SellerRepository { return f.sellers }
func (f *fakeTxScope) Users() identity.UserRepository     { return f.users }
func (f *fakeTxScope) Clients() partner.ClientRepository  { return nil }
func (f *fakeTxScope) Orders() trade.OrderRepository      { return nil }

func (f *fakeTxScope) SaveEvents(context.Context, ...shared.DomainEvent) error { return nil }
