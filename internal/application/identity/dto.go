package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/identity"
)

// ResolveInput carries the verified claims of a bearer token
type ResolveInput struct {
	ExternalID string
	Email      string
	Role       string
}

// CurrentUser is the internal user behind an authenticated request
type CurrentUser struct {
	ID         uuid.UUID     `json:"id"`
	ExternalID string        `json:"external_id"`
	Email      string        `json:"email"`
	Role       identity.Role `json:"role"`
	CreatedAt  time.Time     `json:"created_at"`
}

// IsAdmin returns true for administrators
func (u *CurrentUser) IsAdmin() bool {
	return u.Role == identity.RoleAdmin
}

// ToCurrentUser converts a domain User
func ToCurrentUser(u *identity.User) *CurrentUser {
	return &CurrentUser{
		ID:         u.ID,
		ExternalID: u.ExternalID,
		Email:      u.Email,
		Role:       u.Role,
		CreatedAt:  u.CreatedAt,
	}
}
