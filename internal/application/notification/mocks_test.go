package notification

import (
	"context"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockGateway is a mock implementation of Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Send(ctx context.Context, creds identity.MessagingCredentials, phone, text string) (*GatewayResponse, error) {
	args := m.Called(ctx, creds, phone, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GatewayResponse), args.Error(1)
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

// MockNotificationMetrics is a mock implementation of NotificationMetrics
type MockNotificationMetrics struct {
	mock.Mock
}

func (m *MockNotificationMetrics) RecordNotification(ctx context.Context, recipient, outcome string) {
	m.Called(ctx, recipient, outcome)
}
