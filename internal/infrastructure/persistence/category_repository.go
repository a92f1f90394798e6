package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCategoryRepository implements catalog.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a category by ID within a seller
func (r *GormCategoryRepository) FindByID(ctx context.Context, sellerID shared.SellerID, id uuid.UUID) (*catalog.Category, error) {
	var model models.CategoryModel
	if err := r.db.WithContext(ctx).
		Scopes(sellerScope(sellerID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain()
}

// FindAll returns the seller's categories ordered by name
func (r *GormCategoryRepository) FindAll(ctx context.Context, sellerID shared.SellerID) ([]*catalog.Category, error) {
	var rows []models.CategoryModel
	if err := r.db.WithContext(ctx).
		Scopes(sellerScope(sellerID)).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	categories := make([]*catalog.Category, 0, len(rows))
	for i := range rows {
		category, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

// Create inserts a new category
func (r *GormCategoryRepository) Create(ctx context.Context, category *catalog.Category) error {
	if err := shared.RequireSeller(category.SellerID); err != nil {
		return err
	}
	return translateError(r.db.WithContext(ctx).Create(models.CategoryModelFromDomain(category)).Error)
}

// Save updates an existing category of the same seller
func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	model := models.CategoryModelFromDomain(category)
	result := r.db.WithContext(ctx).Model(&models.CategoryModel{}).
		Scopes(sellerScope(category.SellerID)).
		Where("id = ?", category.ID).
		Updates(map[string]any{
			"name":       model.Name,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a category of the seller
func (r *GormCategoryRepository) Delete(ctx context.Context, sellerID shared.SellerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Scopes(sellerScope(sellerID)).
		Where("id = ?", id).
		Delete(&models.CategoryModel{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormCategoryRepository implements CategoryRepository
var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
