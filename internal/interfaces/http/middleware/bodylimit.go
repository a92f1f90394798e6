package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// BodyLimit returns a middleware that limits request body size
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		limitBody(c, maxBytes)
	}
}

// BodyLimitWithUploads applies maxUploadBytes to paths under uploadPrefix
// and maxBytes to everything else
func BodyLimitWithUploads(maxBytes, maxUploadBytes int64, uploadPrefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, uploadPrefix) {
			limitBody(c, maxUploadBytes)
			return
		}
		limitBody(c, maxBytes)
	}
}

func limitBody(c *gin.Context, maxBytes int64) {
	if c.Request.ContentLength > maxBytes {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeRequestTooLarge,
			"Request body exceeds maximum allowed size",
			c.GetString(RequestIDKey),
		))
		return
	}

	// Chunked bodies have no Content-Length; cap the reader instead
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	c.Next()
}
