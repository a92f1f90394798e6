package identity

import (
	"strings"
	"time"

	"github.com/storefront/backend/internal/domain/shared"
)

// MessagingCredentials are the per-seller credentials for the messaging gateway
type MessagingCredentials struct {
	APIKey string
	Sender string
}

// IsComplete reports whether both the api key and the sender id are present
func (c MessagingCredentials) IsComplete() bool {
	return strings.TrimSpace(c.APIKey) != "" && strings.TrimSpace(c.Sender) != ""
}

// Seller is a tenant: an independent shop and the unit of data isolation.
// Sellers are never deleted.
type Seller struct {
	ID        shared.SellerID
	OwnerName string
	ShopName  string
	Phone     string
	LogoURL   string
	Messaging MessagingCredentials
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSeller creates a seller with the given code
func NewSeller(id shared.SellerID, ownerName, shopName, phone string) (*Seller, error) {
	if err := shared.RequireSeller(id); err != nil {
		return nil, err
	}
	ownerName = strings.TrimSpace(ownerName)
	shopName = strings.TrimSpace(shopName)
	phone = shared.NormalizePhone(phone)

	if ownerName == "" {
		return nil, shared.NewDomainError("INVALID_OWNER_NAME", "Owner name cannot be empty")
	}
	if shopName == "" {
		return nil, shared.NewDomainError("INVALID_SHOP_NAME", "Shop name cannot be empty")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone cannot be empty")
	}

	now := time.Now()
	return &Seller{
		ID:        id,
		OwnerName: ownerName,
		ShopName:  shopName,
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SellerUpdate carries a partial update; nil fields are left unchanged
type SellerUpdate struct {
	OwnerName       *string
	ShopName        *string
	Phone           *string
	LogoURL         *string
	MessagingAPIKey *string
	MessagingSender *string
}

// Apply merges the non-nil fields of the update into the seller
func (s *Seller) Apply(u SellerUpdate) error {
	if u.OwnerName != nil {
		name := strings.TrimSpace(*u.OwnerName)
		if name == "" {
			return shared.NewDomainError("INVALID_OWNER_NAME", "Owner name cannot be empty")
		}
		s.OwnerName = name
	}
	if u.ShopName != nil {
		name := strings.TrimSpace(*u.ShopName)
		if name == "" {
			return shared.NewDomainError("INVALID_SHOP_NAME", "Shop name cannot be empty")
		}
		s.ShopName = name
	}
	if u.Phone != nil {
		phone := shared.NormalizePhone(*u.Phone)
		if phone == "" {
			return shared.NewDomainError("INVALID_PHONE", "Phone cannot be empty")
		}
		s.Phone = phone
	}
	if u.LogoURL != nil {
		s.LogoURL = strings.TrimSpace(*u.LogoURL)
	}
	if u.MessagingAPIKey != nil {
		s.Messaging.APIKey = strings.TrimSpace(*u.MessagingAPIKey)
	}
	if u.MessagingSender != nil {
		s.Messaging.Sender = strings.TrimSpace(*u.MessagingSender)
	}
	s.UpdatedAt = time.Now()
	return nil
}
