package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storefrontInput struct {
	SellerID string `json:"seller_id" validate:"required,sellerid"`
	Phone    string `json:"phone" validate:"required,phone"`
	Status   string `json:"status" validate:"omitempty,orderstatus"`
	Name     string `json:"name" validate:"required,max=5"`
}

func newTestValidate(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	require.NoError(t, RegisterValidators(v))
	return v
}

func TestSetupValidator(t *testing.T) {
	require.NoError(t, SetupValidator())
}

func TestRegisterValidators(t *testing.T) {
	v := newTestValidate(t)

	valid := storefrontInput{SellerID: "ABC1234", Phone: "+33 6 12 34 56 78", Status: "processed", Name: "Awa"}
	assert.NoError(t, v.Struct(valid))

	tests := []struct {
		name  string
		input storefrontInput
		field string
	}{
		{"lowercase seller", storefrontInput{SellerID: "abc1234", Phone: "0612345678", Name: "Awa"}, "seller_id"},
		{"short seller", storefrontInput{SellerID: "ABC12", Phone: "0612345678", Name: "Awa"}, "seller_id"},
		{"phone with letters", storefrontInput{SellerID: "ABC1234", Phone: "06-CALL-ME", Name: "Awa"}, "phone"},
		{"phone too short", storefrontInput{SellerID: "ABC1234", Phone: "123", Name: "Awa"}, "phone"},
		{"unknown status", storefrontInput{SellerID: "ABC1234", Phone: "0612345678", Status: "shipped", Name: "Awa"}, "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			require.Error(t, err)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.field, verrs[0].Field())
		})
	}
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("0612345678"))
	assert.True(t, IsValidPhone("+221 77 123 45 67"))
	assert.False(t, IsValidPhone(""))
	assert.False(t, IsValidPhone("++221771234567"))
	assert.False(t, IsValidPhone("12345"))
}

func TestFormatValidationErrors(t *testing.T) {
	v := newTestValidate(t)
	err := v.Struct(storefrontInput{SellerID: "ABC1234", Phone: "bad", Name: "too long name"})
	require.Error(t, err)

	resp := FormatValidationErrors(err, "req-1")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.ElementsMatch(t, []dto.ValidationDetail{
		{Field: "phone", Message: "Invalid phone number"},
		{Field: "name", Message: "Must be at most 5 characters"},
	}, resp.Error.Details)
}

func TestHandleValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(RequestIDKey, "req-2")

	v := newTestValidate(t)
	HandleValidationError(c, v.Struct(storefrontInput{Phone: "0612345678", Name: "Awa"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "req-2", resp.Error.RequestID)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "seller_id", resp.Error.Details[0].Field)
	assert.Equal(t, "This field is required", resp.Error.Details[0].Message)
}
