package partner

import (
	"strings"
	"time"

	"github.com/storefront/backend/internal/domain/shared"
)

// ErrInvalidPhone is returned when a client phone number is empty or malformed
var ErrInvalidPhone = shared.NewDomainError("INVALID_PHONE", "Phone number is missing or invalid")

// Client is a shopper of one seller. The phone number is the natural key
// within a seller, so the id is derived as "{sellerId}_{phone}".
type Client struct {
	ID            string
	SellerID      shared.SellerID
	Phone         string
	Name          string
	FirstName     string
	DeliveryPlace string
	GPS           *shared.GeoPoint
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ClientID derives the client id from the seller and the normalized phone
func ClientID(sellerID shared.SellerID, phone string) string {
	return sellerID.String() + "_" + shared.NormalizePhone(phone)
}

// ClientDetails carries what a visit or an order knows about a shopper
type ClientDetails struct {
	Name          string
	FirstName     string
	DeliveryPlace string
	GPS           *shared.GeoPoint
}

// NewClient creates a client for a seller
func NewClient(sellerID shared.SellerID, phone string, details ClientDetails) (*Client, error) {
	if err := shared.RequireSeller(sellerID); err != nil {
		return nil, err
	}
	phone = shared.NormalizePhone(phone)
	if phone == "" {
		return nil, ErrInvalidPhone
	}
	if details.GPS != nil {
		if err := details.GPS.Validate(); err != nil {
			return nil, err
		}
	}
	now := time.Now()
	return &Client{
		ID:            ClientID(sellerID, phone),
		SellerID:      sellerID,
		Phone:         phone,
		Name:          strings.TrimSpace(details.Name),
		FirstName:     strings.TrimSpace(details.FirstName),
		DeliveryPlace: strings.TrimSpace(details.DeliveryPlace),
		GPS:           details.GPS,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Merge applies newer details to an existing client.
// Name and first name are replaced when provided. Delivery place and GPS are
// only filled in when the client has none yet.
func (c *Client) Merge(details ClientDetails) error {
	if details.GPS != nil {
		if err := details.GPS.Validate(); err != nil {
			return err
		}
	}
	if name := strings.TrimSpace(details.Name); name != "" {
		c.Name = name
	}
	if firstName := strings.TrimSpace(details.FirstName); firstName != "" {
		c.FirstName = firstName
	}
	if c.DeliveryPlace == "" {
		c.DeliveryPlace = strings.TrimSpace(details.DeliveryPlace)
	}
	if c.GPS == nil && details.GPS != nil {
		gps := *details.GPS
		c.GPS = &gps
	}
	c.UpdatedAt = time.Now()
	return nil
}

// DisplayName returns "FirstName Name" or whichever part is set
func (c *Client) DisplayName() string {
	return strings.TrimSpace(c.FirstName + " " + c.Name)
}
