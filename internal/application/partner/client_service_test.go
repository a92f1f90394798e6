package partner

import (
	"context"
	"testing"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/partner"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testSeller = shared.MustParseSellerID("ABC1234")

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

func newTestSeller(t *testing.T) *identity.Seller {
	t.Helper()
	seller, err := identity.NewSeller(testSeller, "Awa", "Chez Awa", "770000000")
	require.NoError(t, err)
	return seller
}

func TestClientService_Landing(t *testing.T) {
	t.Run("first visit has no client", func(t *testing.T) {
		clients, sellers := new(MockClientRepository), new(MockSellerRepository)
		svc := NewClientService(clients, sellers, zap.NewNop())
		sellers.On("FindByID", mock.Anything, testSeller).Return(newTestSeller(t), nil)
		clients.On("FindByPhone", mock.Anything, testSeller, "771234567").Return(nil, shared.ErrNotFound)

		resp, err := svc.Landing(context.Background(), testSeller, " 77 123 45 67 ")
		require.NoError(t, err)
		assert.Equal(t, "Chez Awa", resp.Shop.ShopName)
		assert.Equal(t, "771234567", resp.Phone)
		assert.Nil(t, resp.Client)
	})

	t.Run("returning shopper", func(t *testing.T) {
		clients, sellers := new(MockClientRepository), new(MockSellerRepository)
		svc := NewClientService(clients, sellers, zap.NewNop())
		client, err := partner.NewClient(testSeller, "771234567", partner.ClientDetails{Name: "Ndiaye", FirstName: "Fatou"})
		require.NoError(t, err)
		sellers.On("FindByID", mock.Anything, testSeller).Return(newTestSeller(t), nil)
		clients.On("FindByPhone", mock.Anything, testSeller, "771234567").Return(client, nil)

		resp, err := svc.Landing(context.Background(), testSeller, "771234567")
		require.NoError(t, err)
		require.NotNil(t, resp.Client)
		assert.Equal(t, "ABC1234_771234567", resp.Client.ID)
		assert.Equal(t, "Fatou Ndiaye", resp.Client.DisplayName)
	})

	t.Run("unknown seller", func(t *testing.T) {
		clients, sellers := new(MockClientRepository), new(MockSellerRepository)
		svc := NewClientService(clients, sellers, zap.NewNop())
		sellers.On("FindByID", mock.Anything, testSeller).Return(nil, shared.ErrNotFound)

		_, err := svc.Landing(context.Background(), testSeller, "771234567")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("blank phone", func(t *testing.T) {
		svc := NewClientService(new(MockClientRepository), new(MockSellerRepository), zap.NewNop())
		_, err := svc.Landing(context.Background(), testSeller, "   ")
		assert.ErrorIs(t, err, partner.ErrInvalidPhone)
	})
}

func TestClientService_RecordVisit(t *testing.T) {
	t.Run("creates client on first visit", func(t *testing.T) {
		clients, sellers := new(MockClientRepository), new(MockSellerRepository)
		svc := NewClientService(clients, sellers, zap.NewNop())
		sellers.On("ExistsByID", mock.Anything, testSeller).Return(true, nil)
		clients.On("FindByPhone", mock.Anything, testSeller, "771234567").Return(nil, shared.ErrNotFound)
		clients.On("Save", mock.Anything, mock.MatchedBy(func(c *partner.Client) bool {
			return c.ID == "ABC1234_771234567" && c.DeliveryPlace == "Plateau"
		})).Return(nil)

		resp, err := svc.RecordVisit(context.Background(), testSeller, "77 123 45 67", VisitRequest{Name: "Ndiaye", DeliveryPlace: "Plateau"})
		require.NoError(t, err)
		assert.Equal(t, "Ndiaye", resp.Name)
		clients.AssertExpectations(t)
	})

	t.Run("merge keeps existing delivery place", func(t *testing.T) {
		clients, sellers := new(MockClientRepository), new(MockSellerRepository)
		svc := NewClientService(clients, sellers, zap.NewNop())
		existing, err := partner.NewClient(testSeller, "771234567", partner.ClientDetails{Name: "Ndiaye", DeliveryPlace: "Plateau"})
		require.NoError(t, err)
		sellers.On("ExistsByID", mock.Anything, testSeller).Return(true, nil)
		clients.On("FindByPhone", mock.Anything, testSeller, "771234567").Return(existing, nil)
		clients.On("Save", mock.Anything, existing).Return(nil)

		resp, err := svc.RecordVisit(context.Background(), testSeller, "771234567", VisitRequest{FirstName: "Fatou", DeliveryPlace: "Almadies"})
		require.NoError(t, err)
		assert.Equal(t, "Plateau", resp.DeliveryPlace)
		assert.Equal(t, "Fatou", resp.FirstName)
	})

	t.Run("invalid gps", func(t *testing.T) {
		clients, sellers := new(MockClientRepository), new(MockSellerRepository)
		svc := NewClientService(clients, sellers, zap.NewNop())
		sellers.On("ExistsByID", mock.Anything, testSeller).Return(true, nil)
		clients.On("FindByPhone", mock.Anything, testSeller, "771234567").Return(nil, shared.ErrNotFound)

		_, err := svc.RecordVisit(context.Background(), testSeller, "771234567", VisitRequest{GPS: &shared.GeoPoint{Latitude: 120}})
		assert.ErrorIs(t, err, shared.ErrInvalidGeoPoint)
		clients.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown seller", func(t *testing.T) {
		clients, sellers := new(MockClientRepository), new(MockSellerRepository)
		svc := NewClientService(clients, sellers, zap.NewNop())
		sellers.On("ExistsByID", mock.Anything, testSeller).Return(false, nil)

		_, err := svc.RecordVisit(context.Background(), testSeller, "771234567", VisitRequest{})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestClientService_List(t *testing.T) {
	clients := new(MockClientRepository)
	svc := NewClientService(clients, new(MockSellerRepository), zap.NewNop())
	c, err := partner.NewClient(testSeller, "771234567", partner.ClientDetails{Name: "Ndiaye"})
	require.NoError(t, err)
	clients.On("FindAll", mock.Anything, testSeller, partner.ClientFilter{Search: "ndi"}).Return([]*partner.Client{c}, nil)

	list, err := svc.List(context.Background(), testSeller, ClientListFilter{Search: "ndi"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "771234567", list[0].Phone)
}
