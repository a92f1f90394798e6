// Package models holds the GORM persistence models and their mapping to the
// domain. Tables are created by the SQL migrations; All is used for
// AutoMigrate in tests.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// BaseModel provides common persistence fields for generated-id models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt.UTC()
	m.UpdatedAt = e.UpdatedAt.UTC()
}

// TenantModel adds the owning seller to BaseModel
type TenantModel struct {
	BaseModel
	SellerID string `gorm:"type:varchar(7);not null;index"`
}

// FromDomainTenantEntity populates TenantModel from a domain TenantEntity
func (m *TenantModel) FromDomainTenantEntity(e shared.TenantEntity) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.SellerID = e.SellerID.String()
}

// ToDomainTenantEntity converts TenantModel to a domain TenantEntity
func (m *TenantModel) ToDomainTenantEntity() (shared.TenantEntity, error) {
	sellerID, err := ParseStoredSellerID(m.SellerID)
	if err != nil {
		return shared.TenantEntity{}, err
	}
	return shared.TenantEntity{BaseEntity: m.BaseModel.ToDomain(), SellerID: sellerID}, nil
}

// ParseStoredSellerID parses a seller code read from the database
func ParseStoredSellerID(code string) (shared.SellerID, error) {
	id, err := shared.ParseSellerID(code)
	if err != nil {
		return shared.SellerID{}, fmt.Errorf("stored seller id %q: %w", code, err)
	}
	return id, nil
}

// All returns every persistence model, in dependency order
func All() []any {
	return []any{
		&SellerModel{},
		&UserModel{},
		&CategoryModel{},
		&ProductModel{},
		&ClientModel{},
		&OrderModel{},
		&OutboxEntryModel{},
	}
}
