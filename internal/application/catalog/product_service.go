package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ErrCategoryNotFound is returned when a product names a category the seller doesn't have
var ErrCategoryNotFound = shared.NewDomainError("INVALID_CATEGORY", "Category not found")

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	storage      ImageStorage
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	storage ImageStorage,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		storage:      storage,
		logger:       logger,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, sellerID shared.SellerID, req CreateProductRequest) (*ProductResponse, error) {
	if err := s.ensureCategory(ctx, sellerID, req.CategoryID); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(sellerID, catalog.ProductInput{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		CategoryID:     req.CategoryID,
		ImageURL:       req.ImageURL,
		Stock:          req.Stock,
		PromotionPrice: req.PromotionPrice,
		IsOutOfStock:   req.IsOutOfStock,
	})
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("seller_id", sellerID.String()),
		zap.String("product_id", product.ID.String()))

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, sellerID shared.SellerID, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, sellerID, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List returns the seller's products with available items first and
// unavailable items last, creation order preserved within each group.
// The admin grid and the client catalog share this ordering.
func (s *ProductService) List(ctx context.Context, sellerID shared.SellerID, filter ProductListFilter) ([]ProductResponse, error) {
	products, err := s.productRepo.FindAll(ctx, sellerID, catalog.ProductFilter{CategoryID: filter.CategoryID})
	if err != nil {
		return nil, err
	}
	return ToProductResponses(catalog.SortByAvailability(products)), nil
}

// Update applies a partial update to a product
func (s *ProductService) Update(ctx context.Context, sellerID shared.SellerID, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, sellerID, id)
	if err != nil {
		return nil, err
	}
	if req.CategoryID != nil && *req.CategoryID != product.CategoryID {
		if err := s.ensureCategory(ctx, sellerID, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	previousImage := product.ImageURL
	if err := product.Apply(req.toDomain()); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	if previousImage != "" && previousImage != product.ImageURL {
		s.removeImage(ctx, previousImage)
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product and, best effort, its uploaded image
func (s *ProductService) Delete(ctx context.Context, sellerID shared.SellerID, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, sellerID, id)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, sellerID, id); err != nil {
		return err
	}
	if product.ImageURL != "" {
		s.removeImage(ctx, product.ImageURL)
	}

	s.logger.Info("Product deleted",
		zap.String("seller_id", sellerID.String()),
		zap.String("product_id", id.String()))
	return nil
}

func (s *ProductService) ensureCategory(ctx context.Context, sellerID shared.SellerID, categoryID uuid.UUID) error {
	if categoryID == uuid.Nil {
		return ErrCategoryNotFound
	}
	if _, err := s.categoryRepo.FindByID(ctx, sellerID, categoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

// removeImage deletes an object we uploaded. External URLs are left alone.
func (s *ProductService) removeImage(ctx context.Context, imageURL string) {
	if s.storage == nil {
		return
	}
	key, ok := s.storage.KeyFromURL(imageURL)
	if !ok {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Warn("Failed to delete product image",
			zap.String("key", key),
			zap.Error(err))
	}
}
