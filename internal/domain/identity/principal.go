package identity

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// ErrNoSellerSelected is returned when a super admin has not picked a seller
var ErrNoSellerSelected = shared.NewDomainError("NO_SELLER_SELECTED", "No seller selected")

// Principal is the authenticated caller of an administrative operation
type Principal struct {
	UserID   uuid.UUID
	Email    string
	Role     Role
	SellerID shared.SellerID
}

// IsSuperAdmin reports whether the principal has cross-tenant access
func (p Principal) IsSuperAdmin() bool {
	return p.Role == RoleSuperAdmin
}

// ResolveSeller is the single authorization decision for tenant-scoped access.
// A seller admin is always scoped to its own seller and may not name another.
// A super admin must name a seller (or fall back to a linked one).
func (p Principal) ResolveSeller(requested string) (shared.SellerID, error) {
	switch p.Role {
	case RoleSuperAdmin:
		if requested == "" {
			if !p.SellerID.IsZero() {
				return p.SellerID, nil
			}
			return shared.SellerID{}, ErrNoSellerSelected
		}
		return shared.ParseSellerID(requested)
	case RoleSellerAdmin:
		if p.SellerID.IsZero() {
			return shared.SellerID{}, shared.ErrForbidden
		}
		if requested != "" && requested != p.SellerID.String() {
			return shared.SellerID{}, shared.ErrForbidden
		}
		return p.SellerID, nil
	default:
		return shared.SellerID{}, shared.ErrForbidden
	}
}

// RequireSuperAdmin rejects any principal without cross-tenant access
func (p Principal) RequireSuperAdmin() error {
	if !p.IsSuperAdmin() {
		return shared.ErrForbidden
	}
	return nil
}
