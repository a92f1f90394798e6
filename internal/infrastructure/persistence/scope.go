package persistence

import (
	"errors"

	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// sellerScope restricts a query to one seller's rows. A zero seller id never
// reaches SQL: the query fails with shared.ErrTenantRequired instead.
func sellerScope(sellerID shared.SellerID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if sellerID.IsZero() {
			_ = db.AddError(shared.ErrTenantRequired)
			return db
		}
		return db.Where("seller_id = ?", sellerID.String())
	}
}

// translateError maps GORM errors onto domain errors
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.ErrInvalidInput
	default:
		return err
	}
}
