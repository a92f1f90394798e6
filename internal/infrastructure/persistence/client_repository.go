package persistence

import (
	"context"
	"strings"

	"github.com/storefront/backend/internal/domain/partner"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormClientRepository implements partner.ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByPhone finds the client of a seller by phone number
func (r *GormClientRepository) FindByPhone(ctx context.Context, sellerID shared.SellerID, phone string) (*partner.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).
		Scopes(sellerScope(sellerID)).
		Where("id = ?", partner.ClientID(sellerID, phone)).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain()
}

// FindAll returns the seller's clients, most recently active first.
// Search matches the name or first name case-insensitively, or a phone substring.
func (r *GormClientRepository) FindAll(ctx context.Context, sellerID shared.SellerID, filter partner.ClientFilter) ([]*partner.Client, error) {
	query := r.db.WithContext(ctx).Scopes(sellerScope(sellerID))
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		phonePattern := "%" + escapeLike(shared.NormalizePhone(search)) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(first_name) LIKE ? ESCAPE '\\' OR phone LIKE ? ESCAPE '\\'",
			pattern, pattern, phonePattern,
		)
	}

	var rows []models.ClientModel
	if err := query.Order("updated_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	clients := make([]*partner.Client, 0, len(rows))
	for i := range rows {
		client, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	return clients, nil
}

// Save inserts the client or overwrites the stored row with the same id
func (r *GormClientRepository) Save(ctx context.Context, client *partner.Client) error {
	if err := shared.RequireSeller(client.SellerID); err != nil {
		return err
	}
	model := models.ClientModelFromDomain(client)
	return translateError(r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "first_name", "delivery_place", "gps_latitude", "gps_longitude", "updated_at",
			}),
		}).
		Create(model).Error)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// Ensure GormClientRepository implements ClientRepository
var _ partner.ClientRepository = (*GormClientRepository)(nil)
