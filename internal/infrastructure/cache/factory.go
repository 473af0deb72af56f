package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/storefront/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// DefaultSweepInterval is how often in-memory stores purge expired entries
const DefaultSweepInterval = time.Minute

// Stores bundles the per-user state stores selected by configuration
type Stores struct {
	Carts    *CartStore
	Sessions *SessionStore
}

// NewStores picks Redis-backed stores when cfg.Cart.Store is "redis" and a
// client is available, otherwise in-memory stores.
func NewStores(cfg *config.Config, client redis.UniversalClient, logger *zap.Logger) Stores {
	if cfg.Cart.Store == "redis" && client != nil {
		logger.Info("Using Redis cart and checkout stores", zap.String("addr", cfg.Redis.Addr()))
		return Stores{
			Carts:    NewRedisCartStore(client, cfg.Cart.TTL),
			Sessions: NewRedisSessionStore(client, cfg.Checkout.SessionTTL),
		}
	}

	if cfg.Cart.Store == "redis" {
		logger.Warn("Redis cart store requested but no Redis client; falling back to memory")
	}
	return Stores{
		Carts:    NewMemoryCartStore(cfg.Cart.TTL),
		Sessions: NewMemorySessionStore(cfg.Checkout.SessionTTL),
	}
}

// Run purges expired in-memory carts and sessions every interval until ctx is done.
// Redis-backed stores expire keys on their own, so Run returns at once for them.
func (s Stores) Run(ctx context.Context, interval time.Duration, logger *zap.Logger) {
	var mems []*memoryBackend
	for _, b := range []backend{s.Carts.backend, s.Sessions.backend} {
		if mem, ok := b.(*memoryBackend); ok {
			mems = append(mems, mem)
		}
	}
	if len(mems) == 0 {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := 0
			for _, mem := range mems {
				removed += mem.sweep()
			}
			if removed > 0 {
				logger.Debug("Expired cache entries purged", zap.Int("removed", removed))
			}
		}
	}
}
