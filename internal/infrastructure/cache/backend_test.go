package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBackend_Sweep(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	mem := newMemoryBackend()
	mem.now = func() time.Time { return now }

	require.NoError(t, mem.set(ctx, "short", []byte("a"), time.Minute))
	require.NoError(t, mem.set(ctx, "long", []byte("b"), time.Hour))
	require.NoError(t, mem.set(ctx, "forever", []byte("c"), 0))

	assert.Equal(t, 0, mem.sweep())
	assert.Equal(t, 3, mem.size())

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, mem.sweep())
	assert.Equal(t, 2, mem.size())

	now = now.Add(24 * time.Hour)
	assert.Equal(t, 1, mem.sweep())
	assert.Equal(t, 1, mem.size())

	_, ok, err := mem.get(ctx, "forever")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStores_RunPurgesAbandonedEntries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stores := Stores{
		Carts:    NewMemoryCartStore(time.Millisecond),
		Sessions: NewMemorySessionStore(time.Millisecond),
	}
	for i := 0; i < 3; i++ {
		c := cart.New(uuid.New())
		require.NoError(t, c.AddItem(cart.Line{ProductID: uuid.New(), Price: decimal.NewFromInt(1), Quantity: 1}))
		require.NoError(t, stores.Carts.Save(ctx, c))
	}
	carts := stores.Carts.backend.(*memoryBackend)
	require.Equal(t, 3, carts.size())

	done := make(chan struct{})
	go func() {
		stores.Run(ctx, 5*time.Millisecond, nil)
		close(done)
	}()

	// nothing reads the abandoned carts again
	assert.Eventually(t, func() bool { return carts.size() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestStores_RunReturnsForRedis(t *testing.T) {
	stores := Stores{
		Carts:    NewRedisCartStore(nil, time.Hour),
		Sessions: NewRedisSessionStore(nil, time.Hour),
	}

	done := make(chan struct{})
	go func() {
		stores.Run(context.Background(), time.Millisecond, nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run should return immediately for Redis-backed stores")
	}
}
