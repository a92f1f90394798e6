package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// uploadFormField is the multipart field carrying the image
const uploadFormField = "file"

// UploadHandler stores product images and seller logos in object storage
type UploadHandler struct {
	BaseHandler
	imageService *catalogapp.ImageService
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(imageService *catalogapp.ImageService) *UploadHandler {
	return &UploadHandler{
		imageService: imageService,
	}
}

type uploadFunc func(c *gin.Context, sellerID shared.SellerID, filename string, data []byte) (*catalogapp.ImageUploadResponse, error)

// UploadProductImage godoc
// @ID           uploadProductImage
// @Summary      Upload a product image
// @Description  JPEG, PNG, GIF or WebP up to 5 MB. Returns the public URL to store on the product.
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        sellerId query string false "Seller ID, required for super admins"
// @Param        file formData file true "Image"
// @Success      201 {object} APIResponse[catalogapp.ImageUploadResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Failure      415 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/uploads/products [post]
func (h *UploadHandler) UploadProductImage(c *gin.Context) {
	h.upload(c, func(c *gin.Context, sellerID shared.SellerID, filename string, data []byte) (*catalogapp.ImageUploadResponse, error) {
		return h.imageService.UploadProductImage(c.Request.Context(), sellerID, filename, data)
	})
}

// UploadSellerLogo godoc
// @ID           uploadSellerLogo
// @Summary      Upload the seller logo
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        sellerId query string false "Seller ID, required for super admins"
// @Param        file formData file true "Image"
// @Success      201 {object} APIResponse[catalogapp.ImageUploadResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Failure      415 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/uploads/logo [post]
func (h *UploadHandler) UploadSellerLogo(c *gin.Context) {
	h.upload(c, func(c *gin.Context, sellerID shared.SellerID, filename string, data []byte) (*catalogapp.ImageUploadResponse, error) {
		return h.imageService.UploadSellerLogo(c.Request.Context(), sellerID, filename, data)
	})
}

func (h *UploadHandler) upload(c *gin.Context, store uploadFunc) {
	sellerID, ok := h.sellerID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile(uploadFormField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.Fail(c, dto.ErrCodeRequestTooLarge, "Upload is too large")
			return
		}
		h.BadRequest(c, "Missing file field")
		return
	}
	if fileHeader.Size > catalogapp.MaxImageSize {
		h.HandleError(c, catalogapp.ErrImageTooLarge)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Unreadable file")
		return
	}
	defer file.Close()

	// One byte past the limit lets the service tell an oversized file apart
	data, err := io.ReadAll(io.LimitReader(file, catalogapp.MaxImageSize+1))
	if err != nil {
		h.BadRequest(c, "Unreadable file")
		return
	}

	result, err := store(c, sellerID, fileHeader.Filename, data)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}
