package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// SetupRequired answers 503 SETUP_REQUIRED on every path outside skipPaths
// while settings are missing. With nothing missing it is a no-op.
func SetupRequired(missing []string, skipPaths ...string) gin.HandlerFunc {
	if len(missing) == 0 {
		return func(c *gin.Context) { c.Next() }
	}

	details := make([]dto.ValidationDetail, len(missing))
	for i, key := range missing {
		details[i] = dto.ValidationDetail{Field: key, Message: "not configured"}
	}
	message := "Service setup required: missing " + strings.Join(missing, ", ")

	return func(c *gin.Context) {
		for _, p := range skipPaths {
			if c.Request.URL.Path == p {
				c.Next()
				return
			}
		}

		resp := dto.NewErrorResponseWithRequestID(dto.ErrCodeSetupRequired, message, c.GetString(RequestIDKey))
		resp.Error.Details = details
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, resp)
	}
}
