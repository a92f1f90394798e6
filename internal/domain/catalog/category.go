package catalog

import (
	"strings"

	"github.com/storefront/backend/internal/domain/shared"
)

const maxCategoryNameLength = 100

// Category groups products of one seller
type Category struct {
	shared.TenantEntity
	Name string
}

// NewCategory creates a new category for a seller
func NewCategory(sellerID shared.SellerID, name string) (*Category, error) {
	if err := shared.RequireSeller(sellerID); err != nil {
		return nil, err
	}
	name, err := validateCategoryName(name)
	if err != nil {
		return nil, err
	}
	return &Category{
		TenantEntity: shared.NewTenantEntity(sellerID),
		Name:         name,
	}, nil
}

// Rename changes the category name
func (c *Category) Rename(name string) error {
	name, err := validateCategoryName(name)
	if err != nil {
		return err
	}
	c.Name = name
	c.Touch()
	return nil
}

func validateCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > maxCategoryNameLength {
		return "", shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return name, nil
}
