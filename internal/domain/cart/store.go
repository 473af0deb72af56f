package cart

import (
	"context"

	"github.com/google/uuid"
)

// Store persists carts between requests
type Store interface {
	// Load returns the user's cart, or an empty cart if none is stored
	Load(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// Save stores the cart, replacing any previous value
	Save(ctx context.Context, c *Cart) error

	// Delete removes the user's cart
	Delete(ctx context.Context, userID uuid.UUID) error
}
