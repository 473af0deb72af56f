package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByExternalID finds a user by the identity provider subject
	FindByExternalID(ctx context.Context, externalID string) (*User, error)

	// Create inserts a new user; a duplicate external ID yields shared.ErrAlreadyExists
	Create(ctx context.Context, user *User) error

	// Update saves changes to an existing user
	Update(ctx context.Context, user *User) error
}
