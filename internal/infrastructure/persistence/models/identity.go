package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
)

// SellerModel is the persistence model for the Seller domain entity.
// The primary key is the caller-supplied seller code.
type SellerModel struct {
	ID              string    `gorm:"type:varchar(7);primaryKey"`
	OwnerName       string    `gorm:"type:varchar(200);not null"`
	ShopName        string    `gorm:"type:varchar(200);not null"`
	Phone           string    `gorm:"type:varchar(50);not null"`
	LogoURL         string    `gorm:"type:text"`
	MessagingAPIKey string    `gorm:"type:text"`
	MessagingSender string    `gorm:"type:varchar(50)"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SellerModel) TableName() string {
	return "sellers"
}

// ToDomain converts the persistence model to a domain Seller
func (m *SellerModel) ToDomain() (*identity.Seller, error) {
	id, err := ParseStoredSellerID(m.ID)
	if err != nil {
		return nil, err
	}
	return &identity.Seller{
		ID:        id,
		OwnerName: m.OwnerName,
		ShopName:  m.ShopName,
		Phone:     m.Phone,
		LogoURL:   m.LogoURL,
		Messaging: identity.MessagingCredentials{
			APIKey: m.MessagingAPIKey,
			Sender: m.MessagingSender,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

// SellerModelFromDomain creates a persistence model from a domain Seller
func SellerModelFromDomain(s *identity.Seller) *SellerModel {
	return &SellerModel{
		ID:              s.ID.String(),
		OwnerName:       s.OwnerName,
		ShopName:        s.ShopName,
		Phone:           s.Phone,
		LogoURL:         s.LogoURL,
		MessagingAPIKey: s.Messaging.APIKey,
		MessagingSender: s.Messaging.Sender,
		CreatedAt:       s.CreatedAt.UTC(),
		UpdatedAt:       s.UpdatedAt.UTC(),
	}
}

// UserModel is the persistence model for an administrative user.
// SellerID is empty for super admins.
type UserModel struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Email        string        `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string        `gorm:"type:varchar(255);not null"`
	Role         identity.Role `gorm:"type:varchar(20);not null"`
	SellerID     *string       `gorm:"type:varchar(7);index"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User
func (m *UserModel) ToDomain() (*identity.User, error) {
	var sellerID shared.SellerID
	if m.SellerID != nil && *m.SellerID != "" {
		id, err := ParseStoredSellerID(*m.SellerID)
		if err != nil {
			return nil, err
		}
		sellerID = id
	}
	return &identity.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		SellerID:     sellerID,
		LastLoginAt:  m.LastLoginAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

// UserModelFromDomain creates a persistence model from a domain User
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		LastLoginAt:  utcPtr(u.LastLoginAt),
		CreatedAt:    u.CreatedAt.UTC(),
		UpdatedAt:    u.UpdatedAt.UTC(),
	}
	if !u.SellerID.IsZero() {
		code := u.SellerID.String()
		m.SellerID = &code
	}
	return m
}
