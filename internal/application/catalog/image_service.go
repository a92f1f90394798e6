package catalog

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MaxImageSize is the largest accepted upload, in bytes
const MaxImageSize = 5 << 20

// AllowedImageTypes maps accepted content types to the file extension used
// in object keys. SVG is excluded since it can carry scripts.
var AllowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Upload errors
var (
	ErrStorageNotConfigured = shared.NewDomainError("STORAGE_NOT_CONFIGURED", "Image storage is not configured")
	ErrEmptyImage           = shared.NewDomainError("EMPTY_IMAGE", "Image file is empty")
	ErrImageTooLarge        = shared.NewDomainError("IMAGE_TOO_LARGE", "Image exceeds the 5 MB limit")
	ErrUnsupportedImageType = shared.NewDomainError("UNSUPPORTED_IMAGE_TYPE", "Only JPEG, PNG, GIF and WebP images are accepted")
)

// ImageStorage stores uploaded images and returns their public URL.
// It is implemented by the infrastructure layer (S3, MinIO, RustFS).
type ImageStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	// KeyFromURL returns the object key of a URL returned by Upload
	KeyFromURL(u string) (string, bool)
}

// ImageService uploads product images and seller logos
type ImageService struct {
	storage ImageStorage
	logger  *zap.Logger
}

// NewImageService creates a new ImageService
func NewImageService(storage ImageStorage, logger *zap.Logger) *ImageService {
	return &ImageService{storage: storage, logger: logger}
}

// UploadProductImage stores an image under products/{seller}/{slug}-{suffix}{ext}
func (s *ImageService) UploadProductImage(ctx context.Context, sellerID shared.SellerID, filename string, data []byte) (*ImageUploadResponse, error) {
	return s.upload(ctx, sellerID, "products", filename, data)
}

// UploadSellerLogo stores a logo under sellers/{seller}/{slug}-{suffix}{ext}
func (s *ImageService) UploadSellerLogo(ctx context.Context, sellerID shared.SellerID, filename string, data []byte) (*ImageUploadResponse, error) {
	return s.upload(ctx, sellerID, "sellers", filename, data)
}

func (s *ImageService) upload(ctx context.Context, sellerID shared.SellerID, folder, filename string, data []byte) (*ImageUploadResponse, error) {
	if err := shared.RequireSeller(sellerID); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	if len(data) > MaxImageSize {
		return nil, ErrImageTooLarge
	}

	contentType := DetectImageType(data)
	ext, ok := AllowedImageTypes[contentType]
	if !ok {
		return nil, ErrUnsupportedImageType
	}

	key := ImageKey(folder, sellerID, filename, ext)
	url, err := s.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		s.logger.Error("Image upload failed",
			zap.String("seller_id", sellerID.String()),
			zap.String("key", key),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Image uploaded",
		zap.String("seller_id", sellerID.String()),
		zap.String("key", key),
		zap.Int("size", len(data)))

	return &ImageUploadResponse{
		URL:         url,
		Key:         key,
		ContentType: contentType,
		Size:        len(data),
	}, nil
}

// DetectImageType sniffs the content type from the file bytes rather than
// trusting the client-supplied header
func DetectImageType(data []byte) string {
	contentType := http.DetectContentType(data)
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return contentType
}

// ImageKey builds a readable, collision-free object key from an upload name
func ImageKey(folder string, sellerID shared.SellerID, filename, ext string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	name := slug.Make(base)
	if name == "" {
		name = "image"
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return folder + "/" + sellerID.String() + "/" + name + "-" + suffix + ext
}
