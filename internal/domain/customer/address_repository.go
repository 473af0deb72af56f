package customer

import (
	"context"

	"github.com/google/uuid"
)

// AddressRepository defines the interface for address persistence
type AddressRepository interface {
	// FindByID finds an address by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Address, error)

	// FindByUser returns the user's address, or shared.ErrNotFound.
	// If several rows exist the default, most recently updated one wins.
	FindByUser(ctx context.Context, userID uuid.UUID) (*Address, error)

	// Save creates or updates an address
	Save(ctx context.Context, address *Address) error

	// Delete deletes an address by ID
	Delete(ctx context.Context, id uuid.UUID) error
}
