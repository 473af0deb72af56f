package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShipping(t *testing.T, street string) valueobject.ShippingAddress {
	t.Helper()
	addr, err := valueobject.NewShippingAddress(street, "Austin", "TX", "78701", "")
	require.NoError(t, err)
	return addr
}

func TestGormAddressRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormAddressRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	_, err := repo.FindByUser(ctx, userID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	addr, err := customer.NewAddress(userID, newTestShipping(t, "1 Main St"))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, addr))

	t.Run("find by user", func(t *testing.T) {
		found, err := repo.FindByUser(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, addr.ID, found.ID)
		assert.Equal(t, "1 Main St", found.Shipping.Street())
		assert.Equal(t, valueobject.DefaultCountry, found.Shipping.Country())
		assert.True(t, found.IsDefault)
	})

	t.Run("replace updates in place", func(t *testing.T) {
		require.NoError(t, addr.Replace(newTestShipping(t, "2 Oak Ave")))
		require.NoError(t, repo.Save(ctx, addr))

		found, err := repo.FindByID(ctx, addr.ID)
		require.NoError(t, err)
		assert.Equal(t, "2 Oak Ave", found.Shipping.Street())

		var count int64
		require.NoError(t, db.Table("addresses").Where("user_id = ?", userID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, addr.ID))
		assert.ErrorIs(t, repo.Delete(ctx, addr.ID), shared.ErrNotFound)
	})
}
