package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
	identityapp "github.com/storefront/backend/internal/application/identity"
	"github.com/storefront/backend/internal/application/notification"
	tradeapp "github.com/storefront/backend/internal/application/trade"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdmin_RequiresToken(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, "/api/v1/admin/categories", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "ERR_UNAUTHORIZED", errorCode(t, w))
}

func TestAdmin_SellerIsolation(t *testing.T) {
	app := newTestApp(t)
	tokenA := app.token(sellerAdminOf(sellerA))
	tokenB := app.token(sellerAdminOf(sellerB))
	path := "/api/v1/admin/categories/" + app.category.ID.String()

	w := app.do(http.MethodGet, path, nil, tokenA)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(http.MethodGet, path, nil, tokenB)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(http.MethodGet, path+"?sellerId="+sellerA.String(), nil, tokenB)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "ERR_FORBIDDEN", errorCode(t, w))
}

func TestAdmin_SuperAdminSelectsSeller(t *testing.T) {
	app := newTestApp(t)
	token := app.token(superAdmin())

	w := app.do(http.MethodGet, "/api/v1/admin/categories", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ERR_NO_SELLER_SELECTED", errorCode(t, w))

	w = app.do(http.MethodGet, "/api/v1/admin/categories?sellerId="+sellerA.String(), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var categories []catalogapp.CategoryResponse
	decode(t, w, &categories)
	require.Len(t, categories, 1)
	assert.Equal(t, "Boissons", categories[0].Name)
}

func TestAdmin_CreateProduct(t *testing.T) {
	app := newTestApp(t)
	token := app.token(sellerAdminOf(sellerA))

	w := app.do(http.MethodPost, "/api/v1/admin/products", map[string]any{
		"name":            "Bissap",
		"price":           1500,
		"promotion_price": 1200,
		"category_id":     app.category.ID,
		"stock":           4,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var product catalogapp.ProductResponse
	decode(t, w, &product)
	assert.Equal(t, int64(1200), product.EffectivePrice)
	assert.True(t, product.HasPromotion)
	assert.True(t, product.IsAvailable)
	assert.Equal(t, sellerA.String(), product.SellerID)
}

func TestAdmin_CreateProductInOtherSellersCategory(t *testing.T) {
	app := newTestApp(t)
	token := app.token(sellerAdminOf(sellerB))

	w := app.do(http.MethodPost, "/api/v1/admin/products", map[string]any{
		"name":        "Bissap",
		"price":       1500,
		"category_id": app.category.ID,
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Equal(t, "ERR_INVALID_CATEGORY", errorCode(t, w))
}

func TestAdmin_UpdateOrderStatus(t *testing.T) {
	app := newTestApp(t)
	token := app.token(sellerAdminOf(sellerA))

	w := app.do(http.MethodPost, shopPath("/orders"), placeOrderBody(app, 3000), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var order tradeapp.OrderResponse
	decode(t, w, &order)

	statusPath := "/api/v1/admin/orders/" + order.ID.String() + "/status"
	w = app.do(http.MethodPut, statusPath, map[string]any{"status": "shipped"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ERR_VALIDATION", errorCode(t, w))

	w = app.do(http.MethodPut, statusPath, map[string]any{"status": "processed"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &order)
	assert.Equal(t, "processed", order.Status)

	w = app.do(http.MethodPut, statusPath, map[string]any{"status": "cancelled"}, app.token(sellerAdminOf(sellerB)))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(http.MethodGet, "/api/v1/admin/orders?status=processed", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var orders []tradeapp.OrderResponse
	decode(t, w, &orders)
	assert.Len(t, orders, 1)
}

func TestAdmin_OrderListRejectsBadRange(t *testing.T) {
	app := newTestApp(t)
	token := app.token(sellerAdminOf(sellerA))

	w := app.do(http.MethodGet, "/api/v1/admin/orders?range=year", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(http.MethodGet, "/api/v1/admin/stats?range=custom&from=2026-10-01&to=2026-10-31", nil, token)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestAdmin_ProvisionSeller(t *testing.T) {
	app := newTestApp(t)
	body := map[string]any{
		"seller_id":  "NEW0001",
		"owner_name": "Fatou Ndiaye",
		"shop_name":  "Chez Fatou",
		"phone":      "+221771112233",
		"email":      "fatou@example.com",
		"password":   "secret123",
	}

	w := app.do(http.MethodPost, "/api/v1/admin/sellers", body, app.token(sellerAdminOf(sellerA)))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(http.MethodPost, "/api/v1/admin/sellers", body, app.token(superAdmin()))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var result identityapp.ProvisionResult
	decode(t, w, &result)
	assert.Equal(t, "NEW0001", result.Seller.ID)
	assert.Equal(t, "seller_admin", result.Admin.Role)
	assert.Equal(t, "NEW0001", result.Admin.SellerID)

	w = app.do(http.MethodPost, "/api/v1/admin/sellers", body, app.token(superAdmin()))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuth_LoginAndMe(t *testing.T) {
	app := newTestApp(t)
	app.createUser(identity.NewSellerAdmin("awa@example.com", "secret123", sellerA))

	w := app.do(http.MethodPost, "/api/v1/auth/login", map[string]any{"email": "awa@example.com", "password": "wrong-pass"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "ERR_INVALID_CREDENTIALS", errorCode(t, w))

	w = app.do(http.MethodPost, "/api/v1/auth/login", map[string]any{"email": "AWA@example.com", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login identityapp.LoginResult
	decode(t, w, &login)
	require.NotNil(t, login.Tokens)
	assert.Equal(t, sellerA.String(), login.User.SellerID)

	w = app.do(http.MethodGet, "/api/v1/auth/me", nil, login.Tokens.AccessToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var me identityapp.UserResponse
	decode(t, w, &me)
	assert.Equal(t, "awa@example.com", me.Email)
	assert.NotNil(t, me.LastLoginAt)
}

func TestRelay_Send(t *testing.T) {
	app := newTestApp(t)
	token := app.token(sellerAdminOf(sellerA))
	path := "/api/v1/admin/notifications/relay"
	body := map[string]any{"phone": shopperPhone, "text": "Votre commande est prête"}

	t.Run("no credentials", func(t *testing.T) {
		w := app.do(http.MethodPost, path, body, token)
		require.Equal(t, http.StatusOK, w.Code)
		var result notification.RelayResult
		decode(t, w, &result)
		assert.False(t, result.Success)
		assert.Equal(t, notification.ReasonNoCredentials, result.Reason)
	})

	seller, err := persistence.NewGormSellerRepository(app.db).FindByID(context.Background(), sellerA)
	require.NoError(t, err)
	key, sender := "api-key", "BOUTIQUE"
	require.NoError(t, seller.Apply(identity.SellerUpdate{MessagingAPIKey: &key, MessagingSender: &sender}))
	require.NoError(t, persistence.NewGormSellerRepository(app.db).Save(context.Background(), seller))
	creds := identity.MessagingCredentials{APIKey: key, Sender: sender}

	t.Run("gateway answers", func(t *testing.T) {
		app.gateway.On("Send", mock.Anything, creds, shopperPhone, "Votre commande est prête").
			Return(&notification.GatewayResponse{Status: http.StatusOK, Body: `{"id":"m1"}`}, nil).Once()

		w := app.do(http.MethodPost, path, body, token)
		require.Equal(t, http.StatusOK, w.Code)
		var result notification.RelayResult
		decode(t, w, &result)
		assert.True(t, result.Success)
		assert.Equal(t, http.StatusOK, result.Status)
		assert.Equal(t, `{"id":"m1"}`, result.Body)
	})

	t.Run("gateway unreachable", func(t *testing.T) {
		app.gateway.On("Send", mock.Anything, creds, shopperPhone, "Votre commande est prête").
			Return(nil, assert.AnError).Once()

		w := app.do(http.MethodPost, path, body, token)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, "ERR_REMOTE_FAILURE", errorCode(t, w))
	})

	t.Run("missing text", func(t *testing.T) {
		w := app.do(http.MethodPost, path, map[string]any{"phone": shopperPhone}, token)
		require.Equal(t, http.StatusOK, w.Code)
		var result notification.RelayResult
		decode(t, w, &result)
		assert.Equal(t, notification.ReasonMissingParams, result.Reason)
	})

	app.gateway.AssertExpectations(t)
}

// pngHeader is enough for content sniffing to report image/png
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func multipartUpload(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if field != "" {
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUpload_ProductImage(t *testing.T) {
	app := newTestApp(t)
	token := app.token(sellerAdminOf(sellerA))

	send := func(field, filename string, data []byte) *httptest.ResponseRecorder {
		body, contentType := multipartUpload(t, field, filename, data)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/uploads/products", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set(middleware.AuthHeaderKey, middleware.BearerPrefix+token)
		w := httptest.NewRecorder()
		app.engine.ServeHTTP(w, req)
		return w
	}

	w := send(uploadFormField, "Jus de Bissap.png", pngHeader)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var uploaded catalogapp.ImageUploadResponse
	decode(t, w, &uploaded)
	assert.Equal(t, "image/png", uploaded.ContentType)
	assert.Contains(t, uploaded.Key, "products/"+sellerA.String()+"/jus-de-bissap")
	assert.Contains(t, app.storage.objects, uploaded.Key)

	w = send(uploadFormField, "notes.txt", []byte("plain text"))
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	assert.Equal(t, "ERR_UNSUPPORTED_IMAGE_TYPE", errorCode(t, w))

	w = send("", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdmin_ProductListFilter(t *testing.T) {
	app := newTestApp(t)
	token := app.token(sellerAdminOf(sellerA))
	other := app.createCategory(sellerA, "Plats")
	app.createProduct(sellerA, catalog.ProductInput{Name: "Bissap", Price: 1000})
	app.createProduct(sellerA, catalog.ProductInput{Name: "Thieb", Price: 3000, CategoryID: other.ID})

	w := app.do(http.MethodGet, "/api/v1/admin/products?category_id="+other.ID.String(), nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var products []catalogapp.ProductResponse
	decode(t, w, &products)
	require.Len(t, products, 1)
	assert.Equal(t, "Thieb", products[0].Name)

	w = app.do(http.MethodGet, "/api/v1/admin/products?category_id=nope", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
