package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, sellerID shared.SellerID, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := catalog.NewCategory(sellerID, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("Category created",
		zap.String("seller_id", sellerID.String()),
		zap.String("category_id", category.ID.String()))

	response := ToCategoryResponse(category)
	return &response, nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, sellerID shared.SellerID, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, sellerID, id)
	if err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// List returns every category of the seller
func (s *CategoryService) List(ctx context.Context, sellerID shared.SellerID) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(categories), nil
}

// Update renames a category
func (s *CategoryService) Update(ctx context.Context, sellerID shared.SellerID, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, sellerID, id)
	if err != nil {
		return nil, err
	}
	if err := category.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// Delete removes a category. Products that reference it keep their category id.
func (s *CategoryService) Delete(ctx context.Context, sellerID shared.SellerID, id uuid.UUID) error {
	if err := s.categoryRepo.Delete(ctx, sellerID, id); err != nil {
		return err
	}
	s.logger.Info("Category deleted",
		zap.String("seller_id", sellerID.String()),
		zap.String("category_id", id.String()))
	return nil
}
