package models

import (
	"github.com/storefront/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	BaseModel
	ExternalID string        `gorm:"type:varchar(255);not null;uniqueIndex"`
	Email      string        `gorm:"type:varchar(255)"`
	Role       identity.Role `gorm:"type:varchar(20);not null;default:'user'"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: aggregateFrom(m.BaseModel),
		ExternalID:        m.ExternalID,
		Email:             m.Email,
		Role:              m.Role,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.ExternalID = u.ExternalID
	m.Email = u.Email
	m.Role = u.Role
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
