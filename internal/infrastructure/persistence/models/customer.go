package models

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// AddressModel is the persistence model for a user's saved address.
type AddressModel struct {
	BaseModel
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Street     string    `gorm:"type:varchar(255);not null"`
	City       string    `gorm:"type:varchar(100);not null"`
	State      string    `gorm:"type:varchar(100);not null"`
	PostalCode string    `gorm:"type:varchar(20);not null"`
	Country    string    `gorm:"type:varchar(100);not null"`
	IsDefault  bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (AddressModel) TableName() string {
	return "addresses"
}

// ToDomain converts the persistence model to a domain Address.
func (m *AddressModel) ToDomain() *customer.Address {
	return &customer.Address{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Shipping:   valueobject.RestoreShippingAddress(m.Street, m.City, m.State, m.PostalCode, m.Country),
		IsDefault:  m.IsDefault,
	}
}

// FromDomain populates the persistence model from a domain Address.
func (m *AddressModel) FromDomain(a *customer.Address) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.UserID = a.UserID
	m.Street = a.Shipping.Street()
	m.City = a.Shipping.City()
	m.State = a.Shipping.State()
	m.PostalCode = a.Shipping.PostalCode()
	m.Country = a.Shipping.Country()
	m.IsDefault = a.IsDefault
}

// AddressModelFromDomain creates a new persistence model from a domain Address.
func AddressModelFromDomain(a *customer.Address) *AddressModel {
	m := &AddressModel{}
	m.FromDomain(a)
	return m
}
