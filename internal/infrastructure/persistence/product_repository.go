package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by ID within a seller
func (r *GormProductRepository) FindByID(ctx context.Context, sellerID shared.SellerID, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Scopes(sellerScope(sellerID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain()
}

// FindAll returns the seller's products in creation order
func (r *GormProductRepository) FindAll(ctx context.Context, sellerID shared.SellerID, filter catalog.ProductFilter) ([]*catalog.Product, error) {
	query := r.db.WithContext(ctx).Scopes(sellerScope(sellerID))
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}

	var rows []models.ProductModel
	if err := query.Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	products := make([]*catalog.Product, 0, len(rows))
	for i := range rows {
		product, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

// Create inserts a new product
func (r *GormProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	if err := shared.RequireSeller(product.SellerID); err != nil {
		return err
	}
	return translateError(r.db.WithContext(ctx).Create(models.ProductModelFromDomain(product)).Error)
}

// Save updates an existing product of the same seller, including cleared
// optional fields
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	result := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Scopes(sellerScope(product.SellerID)).
		Where("id = ?", product.ID).
		Select("*").Omit("id", "seller_id", "created_at").
		Updates(models.ProductModelFromDomain(product))
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a product of the seller
func (r *GormProductRepository) Delete(ctx context.Context, sellerID shared.SellerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Scopes(sellerScope(sellerID)).
		Where("id = ?", id).
		Delete(&models.ProductModel{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
