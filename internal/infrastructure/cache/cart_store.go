package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/storefront/backend/internal/domain/cart"
)

// CartStore implements cart.Store as JSON documents keyed by user id.
// Every Save refreshes the TTL, so idle carts expire.
type CartStore struct {
	backend backend
	ttl     time.Duration
}

// NewMemoryCartStore creates a process-local cart store
func NewMemoryCartStore(ttl time.Duration) *CartStore {
	return &CartStore{backend: newMemoryBackend(), ttl: ttl}
}

// NewRedisCartStore creates a cart store shared through Redis
func NewRedisCartStore(client redis.UniversalClient, ttl time.Duration) *CartStore {
	return &CartStore{backend: &redisBackend{client: client}, ttl: ttl}
}

func cartKey(userID uuid.UUID) string {
	return keyPrefix + "cart:" + userID.String()
}

// Load returns the stored cart or an empty one
func (s *CartStore) Load(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	data, ok, err := s.backend.get(ctx, cartKey(userID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return cart.New(userID), nil
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	c.UserID = userID
	if c.Lines == nil {
		c.Lines = []cart.Line{}
	}
	return &c, nil
}

// Save stores the cart
func (s *CartStore) Save(ctx context.Context, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	return s.backend.set(ctx, cartKey(c.UserID), data, s.ttl)
}

// Delete removes the user's cart
func (s *CartStore) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.backend.del(ctx, cartKey(userID))
}

var _ cart.Store = (*CartStore)(nil)
