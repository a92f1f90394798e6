package partner

import (
	"time"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/partner"
	"github.com/storefront/backend/internal/domain/shared"
)

// VisitRequest carries what the storefront knows about a shopper when they open it
type VisitRequest struct {
	Name          string           `json:"name" binding:"max=100"`
	FirstName     string           `json:"first_name" binding:"max=100"`
	DeliveryPlace string           `json:"delivery_place" binding:"max=500"`
	GPS           *shared.GeoPoint `json:"gps"`
}

// ClientListFilter narrows the admin client list
type ClientListFilter struct {
	Search string `form:"search"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID            string           `json:"id"`
	SellerID      string           `json:"seller_id"`
	Phone         string           `json:"phone"`
	Name          string           `json:"name"`
	FirstName     string           `json:"first_name"`
	DisplayName   string           `json:"display_name"`
	DeliveryPlace string           `json:"delivery_place"`
	GPS           *shared.GeoPoint `json:"gps,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ShopInfo is the public view of the seller shown on the storefront
type ShopInfo struct {
	ID       string `json:"id"`
	ShopName string `json:"shop_name"`
	LogoURL  string `json:"logo_url"`
	Phone    string `json:"phone"`
}

// LandingResponse is returned when a shopper opens their storefront link.
// Client is nil on the first visit.
type LandingResponse struct {
	Shop   ShopInfo        `json:"shop"`
	Phone  string          `json:"phone"`
	Client *ClientResponse `json:"client"`
}

// ToClientResponse converts a domain Client to ClientResponse
func ToClientResponse(c *partner.Client) ClientResponse {
	return ClientResponse{
		ID:            c.ID,
		SellerID:      c.SellerID.String(),
		Phone:         c.Phone,
		Name:          c.Name,
		FirstName:     c.FirstName,
		DisplayName:   c.DisplayName(),
		DeliveryPlace: c.DeliveryPlace,
		GPS:           c.GPS,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func toShopInfo(s *identity.Seller) ShopInfo {
	return ShopInfo{
		ID:       s.ID.String(),
		ShopName: s.ShopName,
		LogoURL:  s.LogoURL,
		Phone:    s.Phone,
	}
}

func (r VisitRequest) toDetails() partner.ClientDetails {
	return partner.ClientDetails{
		Name:          r.Name,
		FirstName:     r.FirstName,
		DeliveryPlace: r.DeliveryPlace,
		GPS:           r.GPS,
	}
}
