package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_Memory(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Hour)
	userID := uuid.New()

	_, err := store.Load(ctx, userID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	sess := checkout.NewSession(userID, valueobject.ShippingAddress{})
	addr, err := valueobject.NewShippingAddress("1 Main St", "Austin", "TX", "78701", "")
	require.NoError(t, err)
	require.NoError(t, sess.SubmitShipping(addr))
	require.NoError(t, store.Save(ctx, sess))

	loaded, err := store.Load(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, checkout.StepPayment, loaded.Step)
	assert.True(t, addr.Equals(loaded.Shipping))

	require.NoError(t, store.Delete(ctx, userID))
	_, err = store.Load(ctx, userID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSessionStore_KeepsPlacedOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Hour)
	userID := uuid.New()

	sess := checkout.NewSession(userID, valueobject.ShippingAddress{})
	addr, err := valueobject.NewShippingAddress("1 Main St", "Austin", "TX", "78701", "")
	require.NoError(t, err)
	require.NoError(t, sess.SubmitShipping(addr))
	require.NoError(t, sess.Confirm(uuid.New(), checkout.PlacedOrder{
		Subtotal:  decimal.RequireFromString("19.99"),
		Tax:       decimal.RequireFromString("2.00"),
		Total:     decimal.RequireFromString("21.99"),
		ItemCount: 1,
	}))
	require.NoError(t, store.Save(ctx, sess))

	loaded, err := store.Load(ctx, userID)
	require.NoError(t, err)
	assert.True(t, loaded.IsComplete())
	require.NotNil(t, loaded.Placed)
	assert.True(t, decimal.RequireFromString("21.99").Equal(loaded.Placed.Total))
	assert.True(t, decimal.RequireFromString("2.00").Equal(loaded.Placed.Tax))
	assert.Equal(t, 1, loaded.Placed.ItemCount)
}
