package customer

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Address is the saved delivery address of a user.
// Each user has at most one; the storefront treats it as the default.
type Address struct {
	shared.BaseEntity
	UserID    uuid.UUID
	Shipping  valueobject.ShippingAddress
	IsDefault bool
}

// NewAddress creates the default address for a user
func NewAddress(userID uuid.UUID, shipping valueobject.ShippingAddress) (*Address, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if shipping.IsEmpty() {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address cannot be empty")
	}
	return &Address{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Shipping:   shipping,
		IsDefault:  true,
	}, nil
}

// Replace overwrites the address fields
func (a *Address) Replace(shipping valueobject.ShippingAddress) error {
	if shipping.IsEmpty() {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot be empty")
	}
	a.Shipping = shipping
	a.UpdatedAt = time.Now()
	return nil
}

// BelongsTo returns true if the address is owned by userID
func (a *Address) BelongsTo(userID uuid.UUID) bool {
	return a.UserID == userID
}
