package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role is the closed set of administrative roles
type Role string

const (
	RoleSellerAdmin Role = "seller_admin"
	RoleSuperAdmin  Role = "super_admin"
)

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	return r == RoleSellerAdmin || r == RoleSuperAdmin
}

// Password cost for bcrypt
const bcryptCost = 12

const minPasswordLength = 6

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User is an administrative identity linked to a role and, for seller admins,
// to exactly one seller.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	SellerID     shared.SellerID
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewSellerAdmin creates a user scoped to one seller
func NewSellerAdmin(email, password string, sellerID shared.SellerID) (*User, error) {
	if err := shared.RequireSeller(sellerID); err != nil {
		return nil, err
	}
	return newUser(email, password, RoleSellerAdmin, sellerID)
}

// NewSuperAdmin creates a cross-tenant administrator
func NewSuperAdmin(email, password string) (*User, error) {
	return newUser(email, password, RoleSuperAdmin, shared.SellerID{})
}

func newUser(email, password string, role Role, sellerID shared.SellerID) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		SellerID:     sellerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// RecordLogin stamps the last login time
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// Principal returns the authorization view of the user
func (u *User) Principal() Principal {
	return Principal{
		UserID:   u.ID,
		Email:    u.Email,
		Role:     u.Role,
		SellerID: u.SellerID,
	}
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
