package checkout

import (
	"context"

	"github.com/google/uuid"
)

// SessionStore persists checkout sessions between requests
type SessionStore interface {
	// Load returns the user's session or shared.ErrNotFound
	Load(ctx context.Context, userID uuid.UUID) (*Session, error)

	// Save stores the session, replacing any previous one
	Save(ctx context.Context, s *Session) error

	// Delete removes the user's session
	Delete(ctx context.Context, userID uuid.UUID) error
}
