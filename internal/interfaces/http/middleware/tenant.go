package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// Seller context keys
const (
	SellerIDKey = "seller_id"
	// SellerQueryParam lets a super admin pick the seller an admin request works on
	SellerQueryParam = "sellerId"
	// SellerPathParam names the seller segment of public storefront routes
	SellerPathParam = "sellerId"
)

// SellerScope resolves the seller an administrative request operates on.
// It must run after the JWT middleware. The principal decides: a seller admin
// is pinned to its own seller, a super admin names one with ?sellerId=.
func SellerScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeUnauthorized, "Authentication required", c.GetString(RequestIDKey)))
			return
		}

		sellerID, err := principal.ResolveSeller(c.Query(SellerQueryParam))
		if err != nil {
			abortWithError(c, err)
			return
		}

		setSeller(c, sellerID)
		c.Next()
	}
}

// StorefrontSeller parses the seller code from the path of a public storefront route
func StorefrontSeller() gin.HandlerFunc {
	return func(c *gin.Context) {
		sellerID, err := shared.ParseSellerID(c.Param(SellerPathParam))
		if err != nil {
			abortWithError(c, err)
			return
		}

		setSeller(c, sellerID)
		c.Next()
	}
}

func setSeller(c *gin.Context, sellerID shared.SellerID) {
	c.Set(SellerIDKey, sellerID)
	c.Request = c.Request.WithContext(logger.WithSellerID(c.Request.Context(), sellerID.String()))
}

// GetSellerID retrieves the seller resolved for this request
func GetSellerID(c *gin.Context) (shared.SellerID, bool) {
	if v, exists := c.Get(SellerIDKey); exists {
		if id, ok := v.(shared.SellerID); ok && !id.IsZero() {
			return id, true
		}
	}
	return shared.SellerID{}, false
}

// abortWithError aborts with the status derived from a domain error code
func abortWithError(c *gin.Context, err error) {
	requestID := c.GetString(RequestIDKey)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		c.AbortWithStatusJSON(dto.GetDomainHTTPStatus(code),
			dto.NewErrorResponseWithRequestID(code, domainErr.Message, requestID))
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeInternal, "An unexpected error occurred", requestID))
}
