package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity provides common fields for entities with a generated id
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// Touch updates the modification timestamp
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TenantEntity is a generated-id entity owned by a seller
type TenantEntity struct {
	BaseEntity
	SellerID     SellerID
	domainEvents []DomainEvent
}

// NewTenantEntity creates a new tenant-scoped entity
func NewTenantEntity(sellerID SellerID) TenantEntity {
	return TenantEntity{
		BaseEntity: NewBaseEntity(),
		SellerID:   sellerID,
	}
}

// AddDomainEvent records a domain event to be published with the next save
func (e *TenantEntity) AddDomainEvent(event DomainEvent) {
	e.domainEvents = append(e.domainEvents, event)
}

// GetDomainEvents returns all pending domain events
func (e *TenantEntity) GetDomainEvents() []DomainEvent {
	return e.domainEvents
}

// ClearDomainEvents clears the pending domain events
func (e *TenantEntity) ClearDomainEvents() {
	e.domainEvents = nil
}
