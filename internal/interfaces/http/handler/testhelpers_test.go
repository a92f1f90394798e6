package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	identityapp "github.com/storefront/backend/internal/application/identity"
	"github.com/storefront/backend/internal/application/notification"
	partnerapp "github.com/storefront/backend/internal/application/partner"
	tradeapp "github.com/storefront/backend/internal/application/trade"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := middleware.SetupValidator(); err != nil {
		panic(err)
	}
}

var (
	sellerA = shared.MustParseSellerID("ABC1234")
	sellerB = shared.MustParseSellerID("XYZ9876")
)

const shopperPhone = "0612345678"

// setupTestDB opens an in-memory SQLite database with every model migrated
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), persistence.GormConfig(zap.NewNop(), "silent"))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// MockGateway implements notification.Gateway for testing
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Send(ctx context.Context, creds identity.MessagingCredentials, phone, text string) (*notification.GatewayResponse, error) {
	args := m.Called(ctx, creds, phone, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.GatewayResponse), args.Error(1)
}

// memoryStorage implements catalogapp.ImageStorage in memory
type memoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: make(map[string][]byte)}
}

func (s *memoryStorage) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return "https://cdn.example.com/" + key, nil
}

func (s *memoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *memoryStorage) KeyFromURL(u string) (string, bool) {
	return strings.CutPrefix(u, "https://cdn.example.com/")
}

// testApp wires real services over SQLite and an in-memory cart store,
// with routes laid out like the server's
type testApp struct {
	t        *testing.T
	db       *gorm.DB
	engine   *gin.Engine
	gateway  *MockGateway
	storage  *memoryStorage
	jwt      *auth.JWTService
	category *catalog.Category
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	log := zap.NewNop()
	db := setupTestDB(t)

	sellerRepo := persistence.NewGormSellerRepository(db)
	userRepo := persistence.NewGormUserRepository(db)
	categoryRepo := persistence.NewGormCategoryRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	clientRepo := persistence.NewGormClientRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)
	txScope := persistence.NewGormTransactionScope(db, nil)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "handler-test-secret-32-characters",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "storefront-test",
	})
	gateway := &MockGateway{}
	storage := newMemoryStorage()

	authService := identityapp.NewAuthService(userRepo, jwtService, auth.NewInMemoryTokenBlacklist(), log)
	sellerService := identityapp.NewSellerService(sellerRepo, txScope, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo, log)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, storage, log)
	imageService := catalogapp.NewImageService(storage, log)
	clientService := partnerapp.NewClientService(clientRepo, sellerRepo, log)
	orderService := tradeapp.NewOrderService(txScope, orderRepo, log)
	cartService := tradeapp.NewCartService(cache.NewInMemoryCartRepository(time.Hour), productRepo, orderService, log)
	relayService := notification.NewRelayService(sellerRepo, gateway, log)

	authHandler := NewAuthHandler(authService)
	sellerHandler := NewSellerHandler(sellerService)
	categoryHandler := NewCategoryHandler(categoryService)
	productHandler := NewProductHandler(productService)
	uploadHandler := NewUploadHandler(imageService)
	clientHandler := NewClientHandler(clientService)
	orderHandler := NewOrderHandler(orderService)
	cartHandler := NewCartHandler(cartService)
	relayHandler := NewRelayHandler(relayService)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	api := engine.Group("/api/v1")
	api.POST("/auth/login", authHandler.Login)
	api.GET("/shops/:sellerId", middleware.StorefrontSeller(), sellerHandler.GetPublic)

	authed := api.Group("", middleware.JWTAuthMiddleware(authService))
	authed.GET("/auth/me", authHandler.Me)
	authed.POST("/admin/sellers", sellerHandler.Provision)
	authed.GET("/admin/sellers", sellerHandler.List)

	admin := authed.Group("/admin", middleware.SellerScope())
	admin.GET("/categories", categoryHandler.List)
	admin.POST("/categories", categoryHandler.Create)
	admin.GET("/categories/:id", categoryHandler.GetByID)
	admin.GET("/products", productHandler.List)
	admin.POST("/products", productHandler.Create)
	admin.PUT("/products/:id", productHandler.Update)
	admin.POST("/uploads/products", uploadHandler.UploadProductImage)
	admin.GET("/orders", orderHandler.List)
	admin.PUT("/orders/:id/status", orderHandler.UpdateStatus)
	admin.GET("/stats", orderHandler.Stats)
	admin.GET("/clients", clientHandler.List)
	admin.POST("/notifications/relay", relayHandler.Send)

	shop := api.Group("/client/:sellerId/:phone", middleware.StorefrontSeller())
	shop.GET("", clientHandler.Landing)
	shop.POST("/visit", clientHandler.RecordVisit)
	shop.GET("/products", productHandler.List)
	shop.GET("/orders", orderHandler.ClientHistory)
	shop.POST("/orders", orderHandler.PlaceOrder)
	shop.GET("/cart", cartHandler.Get)
	shop.POST("/cart/items", cartHandler.AddItem)
	shop.PUT("/cart/items/:productId", cartHandler.UpdateQuantity)
	shop.POST("/cart/checkout", cartHandler.Checkout)

	app := &testApp{t: t, db: db, engine: engine, gateway: gateway, storage: storage, jwt: jwtService}

	ctx := context.Background()
	for _, id := range []shared.SellerID{sellerA, sellerB} {
		seller, err := identity.NewSeller(id, "Awa Diop", "Boutique "+id.String(), "+221770000000")
		require.NoError(t, err)
		require.NoError(t, sellerRepo.Create(ctx, seller))
	}
	app.category = app.createCategory(sellerA, "Boissons")
	return app
}

func (a *testApp) createCategory(sellerID shared.SellerID, name string) *catalog.Category {
	category, err := catalog.NewCategory(sellerID, name)
	require.NoError(a.t, err)
	require.NoError(a.t, persistence.NewGormCategoryRepository(a.db).Create(context.Background(), category))
	return category
}

func (a *testApp) createProduct(sellerID shared.SellerID, in catalog.ProductInput) *catalog.Product {
	if in.CategoryID == uuid.Nil {
		in.CategoryID = a.category.ID
	}
	product, err := catalog.NewProduct(sellerID, in)
	require.NoError(a.t, err)
	require.NoError(a.t, persistence.NewGormProductRepository(a.db).Create(context.Background(), product))
	return product
}

func (a *testApp) createUser(user *identity.User, err error) *identity.User {
	require.NoError(a.t, err)
	require.NoError(a.t, persistence.NewGormUserRepository(a.db).Create(context.Background(), user))
	return user
}

// token issues an access token for principal
func (a *testApp) token(p identity.Principal) string {
	pair, err := a.jwt.GenerateTokenPair(p)
	require.NoError(a.t, err)
	return pair.AccessToken
}

func sellerAdminOf(sellerID shared.SellerID) identity.Principal {
	return identity.Principal{UserID: uuid.New(), Email: "admin@" + sellerID.String() + ".test", Role: identity.RoleSellerAdmin, SellerID: sellerID}
}

func superAdmin() identity.Principal {
	return identity.Principal{UserID: uuid.New(), Email: "root@storefront.test", Role: identity.RoleSuperAdmin}
}

// do sends a JSON request, with a bearer token when token is not empty
func (a *testApp) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(middleware.AuthHeaderKey, middleware.BearerPrefix+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

// decode unmarshals the data field of a success response into out
func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	require.True(t, envelope.Success, w.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

// errorCode returns the error code of an error response
func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	require.NotNil(t, resp.Error, w.Body.String())
	return resp.Error.Code
}
