package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
)

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UpdateCategoryRequest represents a request to rename a category
type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	SellerID  string    `json:"seller_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name           string    `json:"name" binding:"required,min=1,max=200"`
	Description    string    `json:"description" binding:"max=2000"`
	Price          int64     `json:"price" binding:"min=0"`
	CategoryID     uuid.UUID `json:"category_id" binding:"required"`
	ImageURL       string    `json:"image_url" binding:"omitempty,url"`
	Stock          *int      `json:"stock" binding:"omitempty,min=0"`
	PromotionPrice *int64    `json:"promotion_price" binding:"omitempty,min=0"`
	IsOutOfStock   bool      `json:"is_out_of_stock"`
}

// UpdateProductRequest represents a partial product update.
// ClearStock and ClearPromotionPrice remove the optional fields.
type UpdateProductRequest struct {
	Name                *string    `json:"name" binding:"omitempty,min=1,max=200"`
	Description         *string    `json:"description" binding:"omitempty,max=2000"`
	Price               *int64     `json:"price" binding:"omitempty,min=0"`
	CategoryID          *uuid.UUID `json:"category_id"`
	ImageURL            *string    `json:"image_url"`
	Stock               *int       `json:"stock" binding:"omitempty,min=0"`
	ClearStock          bool       `json:"clear_stock"`
	PromotionPrice      *int64     `json:"promotion_price" binding:"omitempty,min=0"`
	ClearPromotionPrice bool       `json:"clear_promotion_price"`
	IsOutOfStock        *bool      `json:"is_out_of_stock"`
}

// ProductListFilter narrows a product listing
type ProductListFilter struct {
	CategoryID *uuid.UUID `form:"category_id"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID             uuid.UUID `json:"id"`
	SellerID       string    `json:"seller_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Price          int64     `json:"price"`
	PromotionPrice *int64    `json:"promotion_price,omitempty"`
	EffectivePrice int64     `json:"effective_price"`
	HasPromotion   bool      `json:"has_promotion"`
	CategoryID     uuid.UUID `json:"category_id"`
	ImageURL       string    `json:"image_url"`
	Stock          *int      `json:"stock,omitempty"`
	IsOutOfStock   bool      `json:"is_out_of_stock"`
	IsAvailable    bool      `json:"is_available"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ImageUploadResponse is returned after an image upload
type ImageUploadResponse struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		SellerID:  c.SellerID.String(),
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToCategoryResponses converts a slice of categories
func ToCategoryResponses(categories []*catalog.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = ToCategoryResponse(c)
	}
	return responses
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		SellerID:       p.SellerID.String(),
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		PromotionPrice: p.PromotionPrice,
		EffectivePrice: p.EffectivePrice(),
		HasPromotion:   p.HasPromotion(),
		CategoryID:     p.CategoryID,
		ImageURL:       p.ImageURL,
		Stock:          p.Stock,
		IsOutOfStock:   p.IsOutOfStock,
		IsAvailable:    p.IsAvailable(),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of products, keeping their order
func ToProductResponses(products []*catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i, p := range products {
		responses[i] = ToProductResponse(p)
	}
	return responses
}

func (r UpdateProductRequest) toDomain() catalog.ProductUpdate {
	return catalog.ProductUpdate{
		Name:                r.Name,
		Description:         r.Description,
		Price:               r.Price,
		CategoryID:          r.CategoryID,
		ImageURL:            r.ImageURL,
		Stock:               r.Stock,
		ClearStock:          r.ClearStock,
		PromotionPrice:      r.PromotionPrice,
		ClearPromotionPrice: r.ClearPromotionPrice,
		IsOutOfStock:        r.IsOutOfStock,
	}
}
