package models

import (
	"time"

	"github.com/storefront/backend/internal/domain/partner"
	"github.com/storefront/backend/internal/domain/shared"
)

// ClientModel is the persistence model for the Client domain entity.
// The primary key is "{sellerId}_{phone}", so upserts are keyed on it.
type ClientModel struct {
	ID            string    `gorm:"type:varchar(80);primaryKey"`
	SellerID      string    `gorm:"type:varchar(7);not null;index"`
	Phone         string    `gorm:"type:varchar(50);not null"`
	Name          string    `gorm:"type:varchar(200)"`
	FirstName     string    `gorm:"type:varchar(200)"`
	DeliveryPlace string    `gorm:"type:text"`
	GPSLatitude   *float64  `gorm:"column:gps_latitude"`
	GPSLongitude  *float64  `gorm:"column:gps_longitude"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client
func (m *ClientModel) ToDomain() (*partner.Client, error) {
	sellerID, err := ParseStoredSellerID(m.SellerID)
	if err != nil {
		return nil, err
	}
	return &partner.Client{
		ID:            m.ID,
		SellerID:      sellerID,
		Phone:         m.Phone,
		Name:          m.Name,
		FirstName:     m.FirstName,
		DeliveryPlace: m.DeliveryPlace,
		GPS:           geoPointFromColumns(m.GPSLatitude, m.GPSLongitude),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

// ClientModelFromDomain creates a persistence model from a domain Client
func ClientModelFromDomain(c *partner.Client) *ClientModel {
	m := &ClientModel{
		ID:            c.ID,
		SellerID:      c.SellerID.String(),
		Phone:         c.Phone,
		Name:          c.Name,
		FirstName:     c.FirstName,
		DeliveryPlace: c.DeliveryPlace,
		CreatedAt:     c.CreatedAt.UTC(),
		UpdatedAt:     c.UpdatedAt.UTC(),
	}
	m.GPSLatitude, m.GPSLongitude = geoPointColumns(c.GPS)
	return m
}

func geoPointColumns(p *shared.GeoPoint) (*float64, *float64) {
	if p == nil {
		return nil, nil
	}
	lat, lng := p.Latitude, p.Longitude
	return &lat, &lng
}

func geoPointFromColumns(lat, lng *float64) *shared.GeoPoint {
	if lat == nil || lng == nil {
		return nil
	}
	return &shared.GeoPoint{Latitude: *lat, Longitude: *lng}
}
