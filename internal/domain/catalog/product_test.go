package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails() ProductDetails {
	return ProductDetails{
		Name:        "Foxtail Millet",
		Description: "Stone ground",
		Price:       decimal.NewFromInt(120),
		Image:       "https://cdn.example.com/foxtail.png",
		Stock:       25,
		Quantity:    1,
		Category:    "Millets",
	}
}

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct(validDetails())
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.NotEmpty(t, product.ID)
		assert.Equal(t, "Foxtail Millet", product.Name)
		assert.Equal(t, "Millets", product.Category)
		assert.True(t, product.Price.Equal(decimal.NewFromInt(120)))
		assert.Equal(t, 25, product.Stock)
		assert.Nil(t, product.Offer)
	})

	t.Run("publishes ProductCreated event", func(t *testing.T) {
		product, err := NewProduct(validDetails())
		require.NoError(t, err)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductCreated, events[0].EventType())

		event, ok := events[0].(*ProductCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, product.ID, event.ProductID)
	})

	t.Run("trims name and category", func(t *testing.T) {
		d := validDetails()
		d.Name = "  Ragi  "
		d.Category = " Millets "
		product, err := NewProduct(d)
		require.NoError(t, err)
		assert.Equal(t, "Ragi", product.Name)
		assert.Equal(t, "Millets", product.Category)
	})

	tests := []struct {
		name   string
		mutate func(*ProductDetails)
		code   string
	}{
		{"empty name", func(d *ProductDetails) { d.Name = "" }, "INVALID_NAME"},
		{"empty category", func(d *ProductDetails) { d.Category = "" }, "INVALID_CATEGORY"},
		{"negative price", func(d *ProductDetails) { d.Price = decimal.NewFromInt(-1) }, "INVALID_PRICE"},
		{"negative stock", func(d *ProductDetails) { d.Stock = -1 }, "INVALID_STOCK"},
		{"zero quantity", func(d *ProductDetails) { d.Quantity = 0 }, "INVALID_QUANTITY"},
		{"offer above 100", func(d *ProductDetails) { o := decimal.NewFromInt(101); d.Offer = &o }, "INVALID_OFFER"},
		{"negative offer", func(d *ProductDetails) { o := decimal.NewFromInt(-5); d.Offer = &o }, "INVALID_OFFER"},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			d := validDetails()
			tt.mutate(&d)
			_, err := NewProduct(d)
			require.Error(t, err)

			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.code, domainErr.Code)
		})
	}

	t.Run("accepts zero price and zero stock", func(t *testing.T) {
		d := validDetails()
		d.Price = decimal.Zero
		d.Stock = 0
		_, err := NewProduct(d)
		assert.NoError(t, err)
	})
}

func TestProduct_Update(t *testing.T) {
	product, err := NewProduct(validDetails())
	require.NoError(t, err)
	product.ClearDomainEvents()

	t.Run("emits price change when price differs", func(t *testing.T) {
		d := validDetails()
		d.Price = decimal.NewFromInt(99)
		require.NoError(t, product.Update(d))

		events := product.GetDomainEvents()
		require.Len(t, events, 2)
		assert.Equal(t, EventTypeProductUpdated, events[0].EventType())
		assert.Equal(t, EventTypeProductPriceChanged, events[1].EventType())

		changed := events[1].(*ProductPriceChangedEvent)
		assert.True(t, changed.OldPrice.Equal(decimal.NewFromInt(120)))
		assert.True(t, changed.NewPrice.Equal(decimal.NewFromInt(99)))
		product.ClearDomainEvents()
	})

	t.Run("keeps state on invalid update", func(t *testing.T) {
		d := validDetails()
		d.Stock = -3
		require.Error(t, product.Update(d))
		assert.Equal(t, 25, product.Stock)
		assert.Empty(t, product.GetDomainEvents())
	})
}

func TestProduct_EffectivePrice(t *testing.T) {
	product, err := NewProduct(validDetails())
	require.NoError(t, err)

	assert.True(t, product.EffectivePrice().Equal(decimal.NewFromInt(120)))
	assert.False(t, product.HasOffer())

	offer := decimal.NewFromInt(10)
	product.Offer = &offer
	assert.True(t, product.HasOffer())
	assert.True(t, product.EffectivePrice().Equal(decimal.NewFromInt(108)))
}

func TestProduct_IsLowStock(t *testing.T) {
	product, err := NewProduct(validDetails())
	require.NoError(t, err)

	product.Stock = LowStockThreshold
	assert.False(t, product.IsLowStock())

	product.Stock = LowStockThreshold - 1
	assert.True(t, product.IsLowStock())
	assert.True(t, product.InStock())

	product.Stock = 0
	assert.False(t, product.InStock())
}
