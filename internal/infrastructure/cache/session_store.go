package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/shared"
)

// SessionStore implements checkout.SessionStore with the same layout as CartStore
type SessionStore struct {
	backend backend
	ttl     time.Duration
}

// NewMemorySessionStore creates a process-local checkout session store
func NewMemorySessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{backend: newMemoryBackend(), ttl: ttl}
}

// NewRedisSessionStore creates a checkout session store shared through Redis
func NewRedisSessionStore(client redis.UniversalClient, ttl time.Duration) *SessionStore {
	return &SessionStore{backend: &redisBackend{client: client}, ttl: ttl}
}

func sessionKey(userID uuid.UUID) string {
	return keyPrefix + "checkout:" + userID.String()
}

// Load returns the user's session or shared.ErrNotFound
func (s *SessionStore) Load(ctx context.Context, userID uuid.UUID) (*checkout.Session, error) {
	data, ok, err := s.backend.get(ctx, sessionKey(userID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.ErrNotFound
	}

	var sess checkout.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode checkout session: %w", err)
	}
	return &sess, nil
}

// Save stores the session
func (s *SessionStore) Save(ctx context.Context, sess *checkout.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode checkout session: %w", err)
	}
	return s.backend.set(ctx, sessionKey(sess.UserID), data, s.ttl)
}

// Delete removes the user's session
func (s *SessionStore) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.backend.del(ctx, sessionKey(userID))
}

var _ checkout.SessionStore = (*SessionStore)(nil)
