package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements trade.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by ID within a seller
func (r *GormOrderRepository) FindByID(ctx context.Context, sellerID shared.SellerID, id uuid.UUID) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Scopes(sellerScope(sellerID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain()
}

// FindAll returns the seller's orders matching filter, newest first
func (r *GormOrderRepository) FindAll(ctx context.Context, sellerID shared.SellerID, filter trade.OrderFilter) ([]*trade.Order, error) {
	query := r.db.WithContext(ctx).Scopes(sellerScope(sellerID))
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ClientPhone != "" {
		query = query.Where("client_phone = ?", shared.NormalizePhone(filter.ClientPhone))
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		query = query.Where("created_at < ?", filter.To.UTC())
	}

	var rows []models.OrderModel
	if err := query.Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]*trade.Order, 0, len(rows))
	for i := range rows {
		order, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// Create inserts a new order
func (r *GormOrderRepository) Create(ctx context.Context, order *trade.Order) error {
	if err := shared.RequireSeller(order.SellerID); err != nil {
		return err
	}
	return translateError(r.db.WithContext(ctx).Create(models.OrderModelFromDomain(order)).Error)
}

// UpdateStatus writes the status of an order and nothing else
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, order *trade.Order) error {
	result := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Scopes(sellerScope(order.SellerID)).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"status":     order.Status,
			"updated_at": order.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormOrderRepository implements OrderRepository
var _ trade.OrderRepository = (*GormOrderRepository)(nil)
