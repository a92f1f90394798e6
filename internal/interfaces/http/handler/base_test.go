package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func readResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetRequestID(t *testing.T) {
	c, _ := newTestContext()
	assert.Empty(t, getRequestID(c))

	c.Set(middleware.RequestIDKey, "req-123")
	assert.Equal(t, "req-123", getRequestID(c))
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, "ERR_NOT_FOUND"},
		{"wrapped not found", fmt.Errorf("load product: %w", shared.ErrNotFound), http.StatusNotFound, "ERR_NOT_FOUND"},
		{"forbidden", shared.NewDomainError("FORBIDDEN", "nope"), http.StatusForbidden, "ERR_FORBIDDEN"},
		{"no seller selected", shared.NewDomainError("NO_SELLER_SELECTED", "pick one"), http.StatusBadRequest, "ERR_NO_SELLER_SELECTED"},
		{"unlisted invalid code", shared.NewDomainError("INVALID_PHONE", "bad phone"), http.StatusBadRequest, "ERR_INVALID_PHONE"},
		{"total mismatch", shared.NewDomainError("TOTAL_MISMATCH", "bad total"), http.StatusUnprocessableEntity, "ERR_TOTAL_MISMATCH"},
		{"email taken", shared.NewDomainError("EMAIL_TAKEN", "taken"), http.StatusConflict, "ERR_EMAIL_TAKEN"},
		{"image too large", shared.NewDomainError("IMAGE_TOO_LARGE", "too big"), http.StatusRequestEntityTooLarge, "ERR_IMAGE_TOO_LARGE"},
		{"storage not configured", shared.NewDomainError("STORAGE_NOT_CONFIGURED", "later"), http.StatusServiceUnavailable, "ERR_STORAGE_NOT_CONFIGURED"},
		{"plain error", errors.New("connection reset"), http.StatusInternalServerError, "ERR_INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()
			c.Set(middleware.RequestIDKey, "req-1")

			h := &BaseHandler{}
			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := readResponse(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, "req-1", resp.Error.RequestID)
		})
	}
}

func TestBaseHandler_HandleErrorNil(t *testing.T) {
	c, w := newTestContext()
	h := &BaseHandler{}
	h.HandleError(c, nil)
	assert.False(t, c.Writer.Written())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBaseHandler_BindError(t *testing.T) {
	type request struct {
		Name string `json:"name" binding:"required"`
	}

	t.Run("validation failure lists fields", func(t *testing.T) {
		c, w := newTestContext()
		var req request
		err := binding.Validator.ValidateStruct(&req)
		require.Error(t, err)

		h := &BaseHandler{}
		h.BindError(c, err)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := readResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "name", resp.Error.Details[0].Field)
	})

	t.Run("malformed body", func(t *testing.T) {
		c, w := newTestContext()
		h := &BaseHandler{}
		h.BindError(c, errors.New("unexpected EOF"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := readResponse(t, w)
		assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
		assert.Contains(t, resp.Error.Message, "unexpected EOF")
	})
}

func TestBaseHandler_MissingContext(t *testing.T) {
	h := &BaseHandler{}

	c, w := newTestContext()
	_, ok := h.principal(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c, w = newTestContext()
	_, ok = h.sellerID(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	c, _ = newTestContext()
	c.Set(middleware.SellerIDKey, sellerA)
	id, ok := h.sellerID(c)
	assert.True(t, ok)
	assert.Equal(t, sellerA, id)
	assert.False(t, c.Writer.Written())
}

func TestBaseHandler_SuccessResponses(t *testing.T) {
	h := &BaseHandler{}

	c, w := newTestContext()
	h.Created(c, map[string]string{"id": "1"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, readResponse(t, w).Success)

	c, w = newTestContext()
	h.SuccessWithMeta(c, []string{"a"}, 11, 2, 5)
	resp := readResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(11), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}
