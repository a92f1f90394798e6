package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/infrastructure/auth"
)

// LoginInput represents login credentials
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult is returned after a successful login or refresh
type LoginResult struct {
	Tokens *auth.TokenPair `json:"tokens"`
	User   UserResponse    `json:"user"`
}

// UserResponse represents an administrative user in API responses
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	SellerID    string     `json:"seller_id,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// ProvisionSellerRequest creates a seller together with its admin account.
// SellerID is optional; a random code is allocated when empty.
type ProvisionSellerRequest struct {
	SellerID        string `json:"seller_id" binding:"omitempty,sellerid"`
	OwnerName       string `json:"owner_name" binding:"required,max=100"`
	ShopName        string `json:"shop_name" binding:"required,max=100"`
	Phone           string `json:"phone" binding:"required,phone"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6,max=72"`
	MessagingAPIKey string `json:"messaging_api_key"`
	MessagingSender string `json:"messaging_sender"`
}

// UpdateSellerRequest is a partial seller update
type UpdateSellerRequest struct {
	OwnerName       *string `json:"owner_name" binding:"omitempty,min=1,max=100"`
	ShopName        *string `json:"shop_name" binding:"omitempty,min=1,max=100"`
	Phone           *string `json:"phone" binding:"omitempty,phone"`
	LogoURL         *string `json:"logo_url" binding:"omitempty,url"`
	MessagingAPIKey *string `json:"messaging_api_key"`
	MessagingSender *string `json:"messaging_sender"`
}

// SellerResponse is the administrative view of a seller.
// The messaging api key is never returned.
type SellerResponse struct {
	ID                  string    `json:"id"`
	OwnerName           string    `json:"owner_name"`
	ShopName            string    `json:"shop_name"`
	Phone               string    `json:"phone"`
	LogoURL             string    `json:"logo_url"`
	MessagingSender     string    `json:"messaging_sender"`
	MessagingConfigured bool      `json:"messaging_configured"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// PublicSellerResponse is what shoppers see of a seller
type PublicSellerResponse struct {
	ID       string `json:"id"`
	ShopName string `json:"shop_name"`
	LogoURL  string `json:"logo_url"`
	Phone    string `json:"phone"`
}

// ProvisionResult is returned after provisioning a seller
type ProvisionResult struct {
	Seller SellerResponse `json:"seller"`
	Admin  UserResponse   `json:"admin"`
}

// ToUserResponse converts a domain User to UserResponse
func ToUserResponse(u *identity.User) UserResponse {
	resp := UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Role:        string(u.Role),
		LastLoginAt: u.LastLoginAt,
	}
	if !u.SellerID.IsZero() {
		resp.SellerID = u.SellerID.String()
	}
	return resp
}

// ToSellerResponse converts a domain Seller to SellerResponse
func ToSellerResponse(s *identity.Seller) SellerResponse {
	return SellerResponse{
		ID:                  s.ID.String(),
		OwnerName:           s.OwnerName,
		ShopName:            s.ShopName,
		Phone:               s.Phone,
		LogoURL:             s.LogoURL,
		MessagingSender:     s.Messaging.Sender,
		MessagingConfigured: s.Messaging.IsComplete(),
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

// ToPublicSellerResponse converts a domain Seller to PublicSellerResponse
func ToPublicSellerResponse(s *identity.Seller) PublicSellerResponse {
	return PublicSellerResponse{
		ID:       s.ID.String(),
		ShopName: s.ShopName,
		LogoURL:  s.LogoURL,
		Phone:    s.Phone,
	}
}

func (r UpdateSellerRequest) toDomain() identity.SellerUpdate {
	return identity.SellerUpdate{
		OwnerName:       r.OwnerName,
		ShopName:        r.ShopName,
		Phone:           r.Phone,
		LogoURL:         r.LogoURL,
		MessagingAPIKey: r.MessagingAPIKey,
		MessagingSender: r.MessagingSender,
	}
}
