package catalog

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

const maxProductNameLength = 200

// Product is a sellable item. Prices are whole currency units.
//
// Stock is optional: nil means stock is not tracked. IsOutOfStock is a manual
// flag independent of Stock.
type Product struct {
	shared.TenantEntity
	Name           string
	Description    string
	Price          int64
	CategoryID     uuid.UUID
	ImageURL       string
	Stock          *int
	PromotionPrice *int64
	IsOutOfStock   bool
}

// ProductInput carries the fields needed to create a product
type ProductInput struct {
	Name           string
	Description    string
	Price          int64
	CategoryID     uuid.UUID
	ImageURL       string
	Stock          *int
	PromotionPrice *int64
	IsOutOfStock   bool
}

// NewProduct creates a new product for a seller
func NewProduct(sellerID shared.SellerID, in ProductInput) (*Product, error) {
	if err := shared.RequireSeller(sellerID); err != nil {
		return nil, err
	}
	p := &Product{
		TenantEntity:   shared.NewTenantEntity(sellerID),
		Name:           strings.TrimSpace(in.Name),
		Description:    strings.TrimSpace(in.Description),
		Price:          in.Price,
		CategoryID:     in.CategoryID,
		ImageURL:       strings.TrimSpace(in.ImageURL),
		Stock:          in.Stock,
		PromotionPrice: in.PromotionPrice,
		IsOutOfStock:   in.IsOutOfStock,
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// ProductUpdate is a partial update; nil fields are left unchanged.
// ClearStock and ClearPromotionPrice remove the optional fields.
type ProductUpdate struct {
	Name                *string
	Description         *string
	Price               *int64
	CategoryID          *uuid.UUID
	ImageURL            *string
	Stock               *int
	ClearStock          bool
	PromotionPrice      *int64
	ClearPromotionPrice bool
	IsOutOfStock        *bool
}

// Apply merges the update into the product and re-validates it
func (p *Product) Apply(u ProductUpdate) error {
	next := *p
	if u.Name != nil {
		next.Name = strings.TrimSpace(*u.Name)
	}
	if u.Description != nil {
		next.Description = strings.TrimSpace(*u.Description)
	}
	if u.Price != nil {
		next.Price = *u.Price
	}
	if u.CategoryID != nil {
		next.CategoryID = *u.CategoryID
	}
	if u.ImageURL != nil {
		next.ImageURL = strings.TrimSpace(*u.ImageURL)
	}
	if u.ClearStock {
		next.Stock = nil
	} else if u.Stock != nil {
		stock := *u.Stock
		next.Stock = &stock
	}
	if u.ClearPromotionPrice {
		next.PromotionPrice = nil
	} else if u.PromotionPrice != nil {
		promo := *u.PromotionPrice
		next.PromotionPrice = &promo
	}
	if u.IsOutOfStock != nil {
		next.IsOutOfStock = *u.IsOutOfStock
	}
	if err := next.validate(); err != nil {
		return err
	}
	*p = next
	p.Touch()
	return nil
}

// HasPromotion reports whether a promotion price applies
func (p *Product) HasPromotion() bool {
	return p.PromotionPrice != nil && *p.PromotionPrice < p.Price
}

// EffectivePrice is the promotion price when set and lower than the list
// price, otherwise the list price.
func (p *Product) EffectivePrice() int64 {
	if p.HasPromotion() {
		return *p.PromotionPrice
	}
	return p.Price
}

// IsAvailable is false when the product is flagged out of stock or its
// tracked stock is zero.
func (p *Product) IsAvailable() bool {
	if p.IsOutOfStock {
		return false
	}
	return p.Stock == nil || *p.Stock != 0
}

// SortByAvailability returns a copy of products with available items first and
// unavailable items last, preserving relative order within each group.
func SortByAvailability(products []*Product) []*Product {
	sorted := make([]*Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].IsAvailable() && !sorted[j].IsAvailable()
	})
	return sorted
}

func (p *Product) validate() error {
	if p.Name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(p.Name) > maxProductNameLength {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if p.Price < 0 {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if p.CategoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATEGORY", "Category is required")
	}
	if p.Stock != nil && *p.Stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	if p.PromotionPrice != nil {
		if *p.PromotionPrice < 0 {
			return shared.NewDomainError("INVALID_PROMOTION_PRICE", "Promotion price cannot be negative")
		}
		if *p.PromotionPrice >= p.Price {
			return shared.NewDomainError("INVALID_PROMOTION_PRICE", "Promotion price must be lower than price")
		}
	}
	return nil
}
