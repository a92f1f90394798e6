package persistence

import (
	"context"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSellerRepository implements identity.SellerRepository using GORM
type GormSellerRepository struct {
	db *gorm.DB
}

// NewGormSellerRepository creates a new GormSellerRepository
func NewGormSellerRepository(db *gorm.DB) *GormSellerRepository {
	return &GormSellerRepository{db: db}
}

// FindByID finds a seller by its code
func (r *GormSellerRepository) FindByID(ctx context.Context, id shared.SellerID) (*identity.Seller, error) {
	if err := shared.RequireSeller(id); err != nil {
		return nil, err
	}
	var model models.SellerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id.String()).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain()
}

// FindAll returns every seller ordered by shop name
func (r *GormSellerRepository) FindAll(ctx context.Context) ([]*identity.Seller, error) {
	var rows []models.SellerModel
	if err := r.db.WithContext(ctx).Order("shop_name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	sellers := make([]*identity.Seller, 0, len(rows))
	for i := range rows {
		seller, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		sellers = append(sellers, seller)
	}
	return sellers, nil
}

// ExistsByID checks whether a seller code is taken
func (r *GormSellerRepository) ExistsByID(ctx context.Context, id shared.SellerID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.SellerModel{}).
		Where("id = ?", id.String()).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new seller. A taken code yields shared.ErrAlreadyExists.
func (r *GormSellerRepository) Create(ctx context.Context, seller *identity.Seller) error {
	return translateError(r.db.WithContext(ctx).Create(models.SellerModelFromDomain(seller)).Error)
}

// Save updates an existing seller
func (r *GormSellerRepository) Save(ctx context.Context, seller *identity.Seller) error {
	result := r.db.WithContext(ctx).Model(&models.SellerModel{}).
		Where("id = ?", seller.ID.String()).
		Select("*").Omit("id", "created_at").
		Updates(models.SellerModelFromDomain(seller))
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormSellerRepository implements SellerRepository
var _ identity.SellerRepository = (*GormSellerRepository)(nil)
