package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	cartapp "github.com/storefront/backend/internal/application/cart"
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	ragiFlour  = uuid.MustParse("7b0f5a4e-1c2d-4e8a-9f10-000000000003")
	rockSalt   = uuid.MustParse("7b0f5a4e-1c2d-4e8a-9f10-000000000006")
	errCommits = errors.New("commit refused")
)

// refusingUnitOfWork runs the work in a real transaction and then fails it
type refusingUnitOfWork struct {
	inner trade.UnitOfWork
}

func (u refusingUnitOfWork) Do(ctx context.Context, fn func(repos trade.TxRepositories) error) error {
	return u.inner.Do(ctx, func(repos trade.TxRepositories) error {
		if err := fn(repos); err != nil {
			return err
		}
		return errCommits
	})
}

type checkoutFixture struct {
	db       *TestDB
	carts    *cartapp.CartService
	userID   uuid.UUID
	shipping checkoutapp.ShippingRequest
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	testDB := NewTestDB(t)
	ctx := context.Background()

	user, err := identity.NewUser("user_checkout", "checkout@example.com", identity.RoleUser)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormUserRepository(testDB.DB).Create(ctx, user))

	return &checkoutFixture{
		db:     testDB,
		userID: user.ID,
		shipping: checkoutapp.ShippingRequest{
			Street: "12 Anna Salai", City: "Chennai", State: "TN", PostalCode: "600002", Country: "India",
		},
	}
}

func (f *checkoutFixture) service(t *testing.T, uow trade.UnitOfWork) (*checkoutapp.CheckoutService, *cache.CartStore) {
	t.Helper()
	carts := cache.NewMemoryCartStore(time.Hour)
	f.carts = cartapp.NewCartService(carts, persistence.NewGormProductRepository(f.db.DB))
	return checkoutapp.NewCheckoutService(
		carts,
		cache.NewMemorySessionStore(time.Hour),
		persistence.NewGormAddressRepository(f.db.DB),
		uow,
		checkoutapp.NewSimulatedAuthorizer(0),
		zap.NewNop(),
	), carts
}

func (f *checkoutFixture) fillCart(t *testing.T) decimal.Decimal {
	t.Helper()
	ctx := context.Background()
	_, err := f.carts.Add(ctx, f.userID, cartapp.AddItemRequest{ProductID: ragiFlour, Quantity: 3})
	require.NoError(t, err)
	resp, err := f.carts.Add(ctx, f.userID, cartapp.AddItemRequest{ProductID: rockSalt, Quantity: 1})
	require.NoError(t, err)
	return resp.Subtotal
}

func TestCheckout_PlacesOrderInOneTransaction(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	f := newCheckoutFixture(t)
	svc, carts := f.service(t, persistence.NewGormUnitOfWork(f.db.DB))
	ctx := context.Background()

	subtotal := f.fillCart(t)
	assert.True(t, decimal.RequireFromString("15.59").Equal(subtotal), "3×4.20 + 2.99")

	_, err := svc.Begin(ctx, f.userID)
	require.NoError(t, err)
	_, err = svc.SubmitShipping(ctx, f.userID, f.shipping)
	require.NoError(t, err)

	confirmation, err := svc.SubmitPayment(ctx, f.userID, checkoutapp.PaymentRequest{Method: trade.PaymentMethodPayPal})
	require.NoError(t, err)
	assert.Equal(t, checkout.StepConfirmation, confirmation.Step)

	order, err := persistence.NewGormOrderRepository(f.db.DB).FindByID(ctx, confirmation.OrderID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("17.15").Equal(order.TotalAmount), "15.59 × 1.1 stored to the cent")
	assert.Len(t, order.Items, 2)
	require.NotNil(t, order.AddressID)

	address, err := persistence.NewGormAddressRepository(f.db.DB).FindByUser(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, *order.AddressID, address.ID)
	assert.Equal(t, "Chennai", address.Shipping.City())

	remaining, err := carts.Load(ctx, f.userID)
	require.NoError(t, err)
	assert.True(t, remaining.IsEmpty())
}

func TestCheckout_FailedTransactionLeavesNothingBehind(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	f := newCheckoutFixture(t)
	svc, carts := f.service(t, refusingUnitOfWork{inner: persistence.NewGormUnitOfWork(f.db.DB)})
	ctx := context.Background()

	f.fillCart(t)
	_, err := svc.Begin(ctx, f.userID)
	require.NoError(t, err)
	_, err = svc.SubmitShipping(ctx, f.userID, f.shipping)
	require.NoError(t, err)

	_, err = svc.SubmitPayment(ctx, f.userID, checkoutapp.PaymentRequest{Method: trade.PaymentMethodPayPal})
	require.ErrorIs(t, err, errCommits)

	var orderCount, addressCount int64
	require.NoError(t, f.db.DB.Table("orders").Count(&orderCount).Error)
	require.NoError(t, f.db.DB.Table("addresses").Count(&addressCount).Error)
	assert.Zero(t, orderCount)
	assert.Zero(t, addressCount)

	_, err = persistence.NewGormAddressRepository(f.db.DB).FindByUser(ctx, f.userID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	kept, err := carts.Load(ctx, f.userID)
	require.NoError(t, err)
	assert.False(t, kept.IsEmpty(), "cart is kept when the order is not placed")
}
