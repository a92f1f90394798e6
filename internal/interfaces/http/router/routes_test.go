package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// denyAll stands in for the token guard
func denyAll(c *gin.Context) {
	c.AbortWithStatus(http.StatusUnauthorized)
}

func setupStorefront(t *testing.T) *gin.Engine {
	t.Helper()
	engine := gin.New()
	h := Handlers{
		Auth:     &handler.AuthHandler{},
		Seller:   &handler.SellerHandler{},
		Category: &handler.CategoryHandler{},
		Product:  &handler.ProductHandler{},
		Upload:   &handler.UploadHandler{},
		Client:   &handler.ClientHandler{},
		Order:    &handler.OrderHandler{},
		Cart:     &handler.CartHandler{},
		Relay:    &handler.RelayHandler{},
		Outbox:   &handler.OutboxHandler{},
		System:   handler.NewSystemHandler(nil, nil, "test"),
	}
	require.NotPanics(t, func() {
		NewRouter(engine).Register(StorefrontRoutes(h, Guards{Authenticate: denyAll})...).Setup()
	})
	return engine
}

func TestStorefrontRoutes_Layout(t *testing.T) {
	engine := setupStorefront(t)

	registered := make(map[string]bool)
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"POST /api/v1/auth/login",
		"POST /api/v1/auth/refresh",
		"POST /api/v1/auth/logout",
		"GET /api/v1/auth/me",
		"GET /api/v1/shops/:sellerId",
		"GET /api/v1/client/:sellerId/:phone",
		"POST /api/v1/client/:sellerId/:phone/visit",
		"GET /api/v1/client/:sellerId/:phone/products",
		"POST /api/v1/client/:sellerId/:phone/orders",
		"POST /api/v1/client/:sellerId/:phone/cart/checkout",
		"DELETE /api/v1/client/:sellerId/:phone/cart/items/:productId",
		"POST /api/v1/admin/sellers",
		"PUT /api/v1/admin/sellers/:id",
		"GET /api/v1/admin/outbox/dead",
		"POST /api/v1/admin/outbox/:id/retry",
		"GET /api/v1/admin/categories/:id",
		"POST /api/v1/admin/products",
		"POST /api/v1/admin/uploads/logo",
		"PUT /api/v1/admin/orders/:id/status",
		"GET /api/v1/admin/clients/:phone",
		"GET /api/v1/admin/stats",
		"POST /api/v1/admin/notifications/relay",
		"GET /api/v1/system/info",
	}
	for _, route := range expected {
		assert.True(t, registered[route], "missing route %s", route)
	}
}

func TestStorefrontRoutes_AdminRequiresToken(t *testing.T) {
	engine := setupStorefront(t)

	for _, path := range []string{
		"/api/v1/admin/categories",
		"/api/v1/admin/sellers",
		"/api/v1/admin/outbox/stats",
		"/api/v1/auth/me",
	} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestStorefrontRoutes_StorefrontIsPublic(t *testing.T) {
	engine := setupStorefront(t)

	// A malformed seller code is rejected by the storefront guard, not the token guard
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/client/bad/0612345678", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/shops/bad", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStorefrontRoutes_SystemInfo(t *testing.T) {
	engine := setupStorefront(t)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/system/info", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
