package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewSharedTestDB(t)
	repo := persistence.NewGormProductRepository(testDB.DB)
	ctx := context.Background()

	t.Run("seeded catalog is present", func(t *testing.T) {
		seeded, err := repo.FindByID(ctx, uuid.MustParse("7b0f5a4e-1c2d-4e8a-9f10-000000000003"))
		require.NoError(t, err)
		assert.Equal(t, "Ragi Flour", seeded.Name)
		assert.True(t, decimal.RequireFromString("4.20").Equal(seeded.Price))

		categories, err := repo.Categories(ctx)
		require.NoError(t, err)
		assert.Contains(t, categories, "Millets")
	})

	t.Run("save update and delete", func(t *testing.T) {
		offer := decimal.NewFromInt(15)
		product, err := catalog.NewProduct(catalog.ProductDetails{
			Name:     "Kodo Millet",
			Price:    decimal.RequireFromString("5.40"),
			Stock:    12,
			Quantity: 1,
			Offer:    &offer,
			Category: "Millets",
		})
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, product))

		found, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		require.NotNil(t, found.Offer)
		assert.True(t, offer.Equal(*found.Offer))

		filter := shared.DefaultFilter()
		filter.Search = "kodo"
		matches, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, product.ID, matches[0].ID)

		require.NoError(t, repo.Delete(ctx, product.ID))
		_, err = repo.FindByID(ctx, product.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOrderRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewSharedTestDB(t)
	t.Cleanup(testDB.CleanTables)
	ctx := context.Background()

	users := persistence.NewGormUserRepository(testDB.DB)
	addresses := persistence.NewGormAddressRepository(testDB.DB)
	orders := persistence.NewGormOrderRepository(testDB.DB)

	user, err := identity.NewUser("user_orders", "orders@example.com", identity.RoleUser)
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, user))

	shipping, err := valueobject.NewShippingAddress("1 Main St", "Chennai", "TN", "600001", "India")
	require.NoError(t, err)
	address, err := customer.NewAddress(user.ID, shipping)
	require.NoError(t, err)
	require.NoError(t, addresses.Save(ctx, address))

	order, err := trade.NewOrder(user.ID, &address.ID, trade.PaymentMethodPayPal, []trade.LineInput{
		{ProductID: uuid.MustParse("7b0f5a4e-1c2d-4e8a-9f10-000000000002"), Quantity: 2, Price: decimal.RequireFromString("6.75")},
	})
	require.NoError(t, err)
	require.NoError(t, orders.Create(ctx, order))

	found, err := orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Mappillai Samba Rice", found.Items[0].ProductName)
	assert.True(t, decimal.RequireFromString("14.85").Equal(found.TotalAmount))
	assert.Equal(t, trade.OrderStatusPending, found.Status)

	counts, err := orders.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[trade.OrderStatusPending])

	revenue, err := orders.SumTotalAmount(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("14.85").Equal(revenue))

	t.Run("order survives product deletion", func(t *testing.T) {
		products := persistence.NewGormProductRepository(testDB.DB)
		product, err := catalog.NewProduct(catalog.ProductDetails{
			Name: "Temporary", Price: decimal.NewFromInt(1), Stock: 1, Quantity: 1, Category: "Salt Items",
		})
		require.NoError(t, err)
		require.NoError(t, products.Save(ctx, product))

		o, err := trade.NewOrder(user.ID, nil, trade.PaymentMethodCard, []trade.LineInput{
			{ProductID: product.ID, Quantity: 1, Price: product.Price},
		})
		require.NoError(t, err)
		require.NoError(t, orders.Create(ctx, o))
		require.NoError(t, products.Delete(ctx, product.ID))

		kept, err := orders.FindByID(ctx, o.ID)
		require.NoError(t, err)
		require.Len(t, kept.Items, 1)
		assert.Equal(t, product.ID, kept.Items[0].ProductID)
	})
}
