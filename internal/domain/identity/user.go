package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Role is the storefront role attached to a user
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid returns true if the role is known
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// ParseRole maps an identity-provider role claim to a Role.
// Unknown or empty claims map to RoleUser.
func ParseRole(claim string) Role {
	r := Role(strings.ToLower(strings.TrimSpace(claim)))
	if r.IsValid() {
		return r
	}
	return RoleUser
}

// User is the local record of a person signed in through the external identity provider
type User struct {
	shared.BaseAggregateRoot
	ExternalID string // subject issued by the identity provider
	Email      string
	Role       Role
}

// NewUser provisions a local user for an external identity
func NewUser(externalID, email string, role Role) (*User, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, shared.NewDomainError("INVALID_EXTERNAL_ID", "External user ID cannot be empty")
	}
	if len(externalID) > 255 {
		return nil, shared.NewDomainError("INVALID_EXTERNAL_ID", "External user ID cannot exceed 255 characters")
	}
	if !role.IsValid() {
		role = RoleUser
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ExternalID:        externalID,
		Email:             strings.ToLower(strings.TrimSpace(email)),
		Role:              role,
	}
	user.AddDomainEvent(NewUserProvisionedEvent(user))
	return user, nil
}

// IsAdmin returns true for administrators
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// SyncEmail updates the stored email if the identity provider reports a different one.
// Returns true when a change was made.
func (u *User) SyncEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || email == u.Email {
		return false
	}
	u.Email = email
	u.UpdatedAt = time.Now()
	return true
}

// SyncRole applies the role claim from the identity provider.
// An empty claim leaves the stored role unchanged. Returns true when a change was made.
func (u *User) SyncRole(claim string) bool {
	if strings.TrimSpace(claim) == "" {
		return false
	}
	role := ParseRole(claim)
	if role == u.Role {
		return false
	}
	u.Role = role
	u.UpdatedAt = time.Now()
	return true
}

// UserProvisionedEvent is published when a user is seen for the first time
type UserProvisionedEvent struct {
	shared.BaseDomainEvent
	UserID     uuid.UUID `json:"user_id"`
	ExternalID string    `json:"external_id"`
	Role       Role      `json:"role"`
}

// Event type and aggregate type for users
const (
	AggregateTypeUser        = "User"
	EventTypeUserProvisioned = "UserProvisioned"
)

// NewUserProvisionedEvent creates a new UserProvisionedEvent
func NewUserProvisionedEvent(u *User) *UserProvisionedEvent {
	return &UserProvisionedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserProvisioned, AggregateTypeUser, u.ID),
		UserID:          u.ID,
		ExternalID:      u.ExternalID,
		Role:            u.Role,
	}
}
