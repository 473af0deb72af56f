package checkout

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shipping(t *testing.T) valueobject.ShippingAddress {
	t.Helper()
	addr, err := valueobject.NewShippingAddress("5 Elm St", "Denver", "CO", "80202", "")
	require.NoError(t, err)
	return addr
}

func TestSession_LinearFlow(t *testing.T) {
	s := NewSession(uuid.New(), valueobject.ShippingAddress{})
	assert.Equal(t, StepShipping, s.Step)

	require.NoError(t, s.SubmitShipping(shipping(t)))
	assert.Equal(t, StepPayment, s.Step)

	orderID := uuid.New()
	placed := PlacedOrder{
		Subtotal:  decimal.RequireFromString("19.99"),
		Tax:       decimal.RequireFromString("2.00"),
		Total:     decimal.RequireFromString("21.99"),
		ItemCount: 1,
	}
	require.NoError(t, s.Confirm(orderID, placed))
	assert.Equal(t, StepConfirmation, s.Step)
	assert.True(t, s.IsComplete())
	require.NotNil(t, s.OrderID)
	assert.Equal(t, orderID, *s.OrderID)
	require.NotNil(t, s.Placed)
	assert.Equal(t, placed, *s.Placed)
}

func TestSession_BackOnlyFromPayment(t *testing.T) {
	s := NewSession(uuid.New(), valueobject.ShippingAddress{})

	err := s.Back()
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	require.NoError(t, s.SubmitShipping(shipping(t)))
	require.NoError(t, s.Back())
	assert.Equal(t, StepShipping, s.Step)
	assert.False(t, s.Shipping.IsEmpty())

	require.NoError(t, s.SubmitShipping(shipping(t)))
	require.NoError(t, s.Confirm(uuid.New(), PlacedOrder{}))
	assert.Error(t, s.Back())
}

func TestSession_CannotSkipSteps(t *testing.T) {
	s := NewSession(uuid.New(), shipping(t))

	assert.ErrorIs(t, s.CanPay(), shared.ErrInvalidState)
	assert.Error(t, s.Confirm(uuid.New(), PlacedOrder{}))

	require.NoError(t, s.SubmitShipping(shipping(t)))
	assert.Error(t, s.SubmitShipping(shipping(t)))
}

func TestSession_RequiresAddress(t *testing.T) {
	s := NewSession(uuid.New(), valueobject.ShippingAddress{})
	err := s.SubmitShipping(valueobject.ShippingAddress{})
	require.Error(t, err)
	assert.Equal(t, StepShipping, s.Step)
}
