package models

import (
	"github.com/storefront/backend/internal/domain/trade"
)

// OrderModel is the persistence model for the Order aggregate.
// Items are stored as a JSON snapshot; delivery details are flattened.
type OrderModel struct {
	TenantModel
	Reference             string            `gorm:"type:varchar(20);not null;index"`
	ClientPhone           string            `gorm:"type:varchar(50);not null;index"`
	Items                 []trade.OrderItem `gorm:"serializer:json;type:jsonb;not null"`
	Total                 int64             `gorm:"not null"`
	Status                trade.OrderStatus `gorm:"type:varchar(20);not null;index"`
	DeliveryName          string            `gorm:"type:varchar(200)"`
	DeliveryFirstName     string            `gorm:"type:varchar(200)"`
	DeliveryPhone         string            `gorm:"type:varchar(50)"`
	DeliverySecondContact string            `gorm:"type:varchar(50)"`
	DeliveryLocation      string            `gorm:"type:text"`
	DeliveryDate          string            `gorm:"type:varchar(50)"`
	DeliveryTimeSlot      string            `gorm:"type:varchar(50)"`
	DeliveryDetails       string            `gorm:"type:text"`
	DeliveryLatitude      *float64
	DeliveryLongitude     *float64
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() (*trade.Order, error) {
	entity, err := m.ToDomainTenantEntity()
	if err != nil {
		return nil, err
	}
	items := m.Items
	if items == nil {
		items = []trade.OrderItem{}
	}
	return &trade.Order{
		TenantEntity: entity,
		Reference:    m.Reference,
		ClientPhone:  m.ClientPhone,
		Items:        items,
		Total:        m.Total,
		Status:       m.Status,
		Delivery: trade.DeliveryDetails{
			Name:          m.DeliveryName,
			FirstName:     m.DeliveryFirstName,
			Phone:         m.DeliveryPhone,
			SecondContact: m.DeliverySecondContact,
			Location:      m.DeliveryLocation,
			Date:          m.DeliveryDate,
			TimeSlot:      m.DeliveryTimeSlot,
			Details:       m.DeliveryDetails,
			GPS:           geoPointFromColumns(m.DeliveryLatitude, m.DeliveryLongitude),
		},
	}, nil
}

// OrderModelFromDomain creates a persistence model from a domain Order
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{
		Reference:             o.Reference,
		ClientPhone:           o.ClientPhone,
		Items:                 o.Items,
		Total:                 o.Total,
		Status:                o.Status,
		DeliveryName:          o.Delivery.Name,
		DeliveryFirstName:     o.Delivery.FirstName,
		DeliveryPhone:         o.Delivery.Phone,
		DeliverySecondContact: o.Delivery.SecondContact,
		DeliveryLocation:      o.Delivery.Location,
		DeliveryDate:          o.Delivery.Date,
		DeliveryTimeSlot:      o.Delivery.TimeSlot,
		DeliveryDetails:       o.Delivery.Details,
	}
	m.FromDomainTenantEntity(o.TenantEntity)
	m.DeliveryLatitude, m.DeliveryLongitude = geoPointColumns(o.Delivery.GPS)
	return m
}
