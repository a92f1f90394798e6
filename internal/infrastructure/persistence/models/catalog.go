package models

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
)

// CategoryModel is the persistence model for the Category domain entity
type CategoryModel struct {
	TenantModel
	Name string `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category
func (m *CategoryModel) ToDomain() (*catalog.Category, error) {
	entity, err := m.ToDomainTenantEntity()
	if err != nil {
		return nil, err
	}
	return &catalog.Category{TenantEntity: entity, Name: m.Name}, nil
}

// CategoryModelFromDomain creates a persistence model from a domain Category
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{Name: c.Name}
	m.FromDomainTenantEntity(c.TenantEntity)
	return m
}

// ProductModel is the persistence model for the Product domain entity.
// Stock and PromotionPrice are NULL when not set.
type ProductModel struct {
	TenantModel
	Name           string    `gorm:"type:varchar(200);not null"`
	Description    string    `gorm:"type:text"`
	Price          int64     `gorm:"not null"`
	CategoryID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ImageURL       string    `gorm:"type:text"`
	Stock          *int
	PromotionPrice *int64
	IsOutOfStock   bool `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() (*catalog.Product, error) {
	entity, err := m.ToDomainTenantEntity()
	if err != nil {
		return nil, err
	}
	return &catalog.Product{
		TenantEntity:   entity,
		Name:           m.Name,
		Description:    m.Description,
		Price:          m.Price,
		CategoryID:     m.CategoryID,
		ImageURL:       m.ImageURL,
		Stock:          m.Stock,
		PromotionPrice: m.PromotionPrice,
		IsOutOfStock:   m.IsOutOfStock,
	}, nil
}

// ProductModelFromDomain creates a persistence model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		CategoryID:     p.CategoryID,
		ImageURL:       p.ImageURL,
		Stock:          p.Stock,
		PromotionPrice: p.PromotionPrice,
		IsOutOfStock:   p.IsOutOfStock,
	}
	m.FromDomainTenantEntity(p.TenantEntity)
	return m
}
