package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	testSeller = shared.MustParseSellerID("ABC1234")
	superAdmin = identity.Principal{UserID: uuid.New(), Email: "root@shop.test", Role: identity.RoleSuperAdmin}
	shopAdmin  = identity.Principal{UserID: uuid.New(), Email: "owner@shop.test", Role: identity.RoleSellerAdmin, SellerID: testSeller}
)

func newTxScope() *fakeTxScope {
	return &fakeTxScope{sellers: new(MockSellerRepository), users: new(MockUserRepository)}
}

func provisionRequest() ProvisionSellerRequest {
	return ProvisionSellerRequest{
		OwnerName: "Awa Diop",
		ShopName:  "Chez Awa",
		Phone:     "+221 77 000 00 00",
		Email:     "Awa@Shop.test",
		Password:  "secret123",
	}
}

func TestSellerService_Provision(t *testing.T) {
	t.Run("creates seller and admin in one transaction", func(t *testing.T) {
		tx := newTxScope()
		svc := NewSellerService(new(MockSellerRepository), tx, zap.NewNop())
		svc.newSellerID = func() shared.SellerID { return testSeller }

		tx.users.On("ExistsByEmail", mock.Anything, "awa@shop.test").Return(false, nil)
		tx.sellers.On("ExistsByID", mock.Anything, testSeller).Return(false, nil)
		tx.sellers.On("Create", mock.Anything, mock.MatchedBy(func(s *identity.Seller) bool {
			return s.ID == testSeller && s.Phone == "+221770000000"
		})).Return(nil)
		tx.users.On("Create", mock.Anything, mock.MatchedBy(func(u *identity.User) bool {
			return u.Role == identity.RoleSellerAdmin && u.SellerID == testSeller && u.Email == "awa@shop.test"
		})).Return(nil)

		result, err := svc.Provision(context.Background(), superAdmin, provisionRequest())
		require.NoError(t, err)
		assert.True(t, tx.committed)
		assert.Equal(t, "ABC1234", result.Seller.ID)
		assert.Equal(t, "ABC1234", result.Admin.SellerID)
		assert.False(t, result.Seller.MessagingConfigured)
		tx.sellers.AssertExpectations(t)
		tx.users.AssertExpectations(t)
	})

	t.Run("user creation failure aborts the transaction", func(t *testing.T) {
		tx := newTxScope()
		svc := NewSellerService(new(MockSellerRepository), tx, zap.NewNop())
		svc.newSellerID = func() shared.SellerID { return testSeller }

		tx.users.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)
		tx.sellers.On("ExistsByID", mock.Anything, testSeller).Return(false, nil)
		tx.sellers.On("Create", mock.Anything, mock.Anything).Return(nil)
		tx.users.On("Create", mock.Anything, mock.Anything).Return(errors.New("duplicate key"))

		_, err := svc.Provision(context.Background(), superAdmin, provisionRequest())
		require.Error(t, err)
		assert.False(t, tx.committed)
	})

	t.Run("retries colliding random codes", func(t *testing.T) {
		tx := newTxScope()
		svc := NewSellerService(new(MockSellerRepository), tx, zap.NewNop())
		taken, free := shared.MustParseSellerID("TAKEN01"), shared.MustParseSellerID("FREE001")
		codes := []shared.SellerID{taken, free}
		svc.newSellerID = func() shared.SellerID {
			id := codes[0]
			codes = codes[1:]
			return id
		}

		tx.users.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)
		tx.sellers.On("ExistsByID", mock.Anything, taken).Return(true, nil)
		tx.sellers.On("ExistsByID", mock.Anything, free).Return(false, nil)
		tx.sellers.On("Create", mock.Anything, mock.Anything).Return(nil)
		tx.users.On("Create", mock.Anything, mock.Anything).Return(nil)

		result, err := svc.Provision(context.Background(), superAdmin, provisionRequest())
		require.NoError(t, err)
		assert.Equal(t, "FREE001", result.Seller.ID)
	})

	t.Run("requested code already used", func(t *testing.T) {
		tx := newTxScope()
		svc := NewSellerService(new(MockSellerRepository), tx, zap.NewNop())
		req := provisionRequest()
		req.SellerID = "ABC1234"

		tx.users.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)
		tx.sellers.On("ExistsByID", mock.Anything, testSeller).Return(true, nil)

		_, err := svc.Provision(context.Background(), superAdmin, req)
		assert.ErrorIs(t, err, ErrSellerExists)
	})

	t.Run("email taken", func(t *testing.T) {
		tx := newTxScope()
		svc := NewSellerService(new(MockSellerRepository), tx, zap.NewNop())
		tx.users.On("ExistsByEmail", mock.Anything, "awa@shop.test").Return(true, nil)

		_, err := svc.Provision(context.Background(), superAdmin, provisionRequest())
		assert.ErrorIs(t, err, ErrEmailTaken)
		tx.sellers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("seller admin cannot provision", func(t *testing.T) {
		tx := newTxScope()
		svc := NewSellerService(new(MockSellerRepository), tx, zap.NewNop())

		_, err := svc.Provision(context.Background(), shopAdmin, provisionRequest())
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("stores messaging credentials", func(t *testing.T) {
		tx := newTxScope()
		svc := NewSellerService(new(MockSellerRepository), tx, zap.NewNop())
		svc.newSellerID = func() shared.SellerID { return testSeller }
		req := provisionRequest()
		req.MessagingAPIKey = "key"
		req.MessagingSender = "221770000000"

		tx.users.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)
		tx.sellers.On("ExistsByID", mock.Anything, testSeller).Return(false, nil)
		tx.sellers.On("Create", mock.Anything, mock.Anything).Return(nil)
		tx.users.On("Create", mock.Anything, mock.Anything).Return(nil)

		result, err := svc.Provision(context.Background(), superAdmin, req)
		require.NoError(t, err)
		assert.True(t, result.Seller.MessagingConfigured)
	})
}

func TestSellerService_Get(t *testing.T) {
	repo := new(MockSellerRepository)
	svc := NewSellerService(repo, newTxScope(), zap.NewNop())
	seller, err := identity.NewSeller(testSeller, "Awa", "Chez Awa", "770000000")
	require.NoError(t, err)
	repo.On("FindByID", mock.Anything, testSeller).Return(seller, nil)

	resp, err := svc.Get(context.Background(), shopAdmin, "")
	require.NoError(t, err)
	assert.Equal(t, "Chez Awa", resp.ShopName)

	_, err = svc.Get(context.Background(), shopAdmin, "ZZZ9999")
	assert.ErrorIs(t, err, shared.ErrForbidden)

	_, err = svc.Get(context.Background(), superAdmin, "")
	assert.ErrorIs(t, err, identity.ErrNoSellerSelected)
}

func TestSellerService_Update(t *testing.T) {
	repo := new(MockSellerRepository)
	svc := NewSellerService(repo, newTxScope(), zap.NewNop())
	seller, err := identity.NewSeller(testSeller, "Awa", "Chez Awa", "770000000")
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, testSeller).Return(seller, nil)
	repo.On("Save", mock.Anything, seller).Return(nil)

	apiKey, sender, logo := "k", "s", "https://cdn.shop.test/sellers/ABC1234/logo.png"
	resp, err := svc.Update(context.Background(), superAdmin, testSeller, UpdateSellerRequest{
		MessagingAPIKey: &apiKey,
		MessagingSender: &sender,
		LogoURL:         &logo,
	})
	require.NoError(t, err)
	assert.True(t, resp.MessagingConfigured)
	assert.Equal(t, logo, resp.LogoURL)

	_, err = svc.Update(context.Background(), shopAdmin, testSeller, UpdateSellerRequest{})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func newAuthService(t *testing.T) (*AuthService, *MockUserRepository, *auth.InMemoryTokenBlacklist) {
	t.Helper()
	users := new(MockUserRepository)
	blacklist := auth.NewInMemoryTokenBlacklist()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-at-least-32-characters!!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "storefront-test",
	})
	return NewAuthService(users, jwtService, blacklist, zap.NewNop()), users, blacklist
}

func newShopAdminUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewSellerAdmin("owner@shop.test", "secret123", testSeller)
	require.NoError(t, err)
	return user
}

func TestAuthService_Login(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		svc, users, _ := newAuthService(t)
		user := newShopAdminUser(t)
		users.On("FindByEmail", mock.Anything, "owner@shop.test").Return(user, nil)
		users.On("Save", mock.Anything, user).Return(nil)

		result, err := svc.Login(context.Background(), LoginInput{Email: " Owner@Shop.test ", Password: "secret123"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Tokens.AccessToken)
		assert.Equal(t, "ABC1234", result.User.SellerID)
		assert.NotNil(t, user.LastLoginAt)

		claims, err := svc.ValidateAccessToken(context.Background(), result.Tokens.AccessToken)
		require.NoError(t, err)
		principal, err := claims.Principal()
		require.NoError(t, err)
		assert.Equal(t, testSeller, principal.SellerID)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, users, _ := newAuthService(t)
		users.On("FindByEmail", mock.Anything, "owner@shop.test").Return(newShopAdminUser(t), nil)

		_, err := svc.Login(context.Background(), LoginInput{Email: "owner@shop.test", Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, users, _ := newAuthService(t)
		users.On("FindByEmail", mock.Anything, "ghost@shop.test").Return(nil, shared.ErrNotFound)

		_, err := svc.Login(context.Background(), LoginInput{Email: "ghost@shop.test", Password: "secret123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshAndLogout(t *testing.T) {
	svc, users, _ := newAuthService(t)
	user := newShopAdminUser(t)
	users.On("FindByEmail", mock.Anything, "owner@shop.test").Return(user, nil)
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	users.On("Save", mock.Anything, user).Return(nil)
	ctx := context.Background()

	login, err := svc.Login(ctx, LoginInput{Email: "owner@shop.test", Password: "secret123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.Tokens.AccessToken)

	_, err = svc.Refresh(ctx, login.Tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken, "a refresh token is single use")

	claims, err := svc.ValidateAccessToken(ctx, refreshed.Tokens.AccessToken)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, claims, refreshed.Tokens.RefreshToken))

	_, err = svc.ValidateAccessToken(ctx, refreshed.Tokens.AccessToken)
	assert.ErrorIs(t, err, auth.ErrTokenBlacklisted)
	_, err = svc.Refresh(ctx, refreshed.Tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestAuthService_RefreshRejectsAccessToken(t *testing.T) {
	svc, users, _ := newAuthService(t)
	user := newShopAdminUser(t)
	users.On("FindByEmail", mock.Anything, mock.Anything).Return(user, nil)
	users.On("Save", mock.Anything, mock.Anything).Return(nil)

	login, err := svc.Login(context.Background(), LoginInput{Email: "owner@shop.test", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), login.Tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestAuthService_CreateSuperAdmin(t *testing.T) {
	svc, users, _ := newAuthService(t)
	users.On("ExistsByEmail", mock.Anything, "root@shop.test").Return(false, nil).Once()
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *identity.User) bool {
		return u.Role == identity.RoleSuperAdmin && u.SellerID.IsZero()
	})).Return(nil)

	resp, err := svc.CreateSuperAdmin(context.Background(), "root@shop.test", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "super_admin", resp.Role)
	assert.Empty(t, resp.SellerID)

	users.On("ExistsByEmail", mock.Anything, "root@shop.test").Return(true, nil)
	_, err = svc.CreateSuperAdmin(context.Background(), "root@shop.test", "secret123")
	assert.ErrorIs(t, err, ErrEmailTaken)
}
