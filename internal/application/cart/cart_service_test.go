package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProductRepository) CountByCategory(ctx context.Context) ([]catalog.CategoryCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.CategoryCount), args.Error(1)
}

func (m *MockProductRepository) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	args := m.Called(ctx, threshold)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func newProduct(t *testing.T, name string, price string, offer *decimal.Decimal) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(catalog.ProductDetails{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Image:    "https://img.example.com/" + name + ".jpg",
		Stock:    50,
		Quantity: 1,
		Offer:    offer,
		Category: "Millets",
	})
	require.NoError(t, err)
	return p
}

func newService(t *testing.T) (*CartService, *MockProductRepository) {
	t.Helper()
	products := new(MockProductRepository)
	return NewCartService(cache.NewMemoryCartStore(time.Hour), products), products
}

func TestCartService_AddAndSubtotal(t *testing.T) {
	service, products := newService(t)
	ctx := context.Background()
	userID := uuid.New()

	offer := decimal.NewFromInt(10)
	ragi := newProduct(t, "ragi", "20.00", &offer)
	salt := newProduct(t, "salt", "3.50", nil)
	products.On("FindByID", ctx, ragi.ID).Return(ragi, nil)
	products.On("FindByID", ctx, salt.ID).Return(salt, nil)

	_, err := service.Add(ctx, userID, AddItemRequest{ProductID: ragi.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = service.Add(ctx, userID, AddItemRequest{ProductID: salt.ID})
	require.NoError(t, err)
	resp, err := service.Add(ctx, userID, AddItemRequest{ProductID: ragi.ID, Quantity: 1})
	require.NoError(t, err)

	require.Len(t, resp.Items, 2)
	assert.Equal(t, 3, resp.Items[0].Quantity)
	// 3 × 18.00 + 1 × 3.50
	assert.True(t, decimal.RequireFromString("57.50").Equal(resp.Subtotal), resp.Subtotal.String())
	assert.Equal(t, 4, resp.ItemCount)
	assert.False(t, resp.Empty)
}

func TestCartService_Add_UnknownProduct(t *testing.T) {
	service, products := newService(t)
	ctx := context.Background()
	id := uuid.New()

	products.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

	_, err := service.Add(ctx, uuid.New(), AddItemRequest{ProductID: id})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCartService_UpdateQuantity_Clamps(t *testing.T) {
	service, products := newService(t)
	ctx := context.Background()
	userID := uuid.New()

	p := newProduct(t, "kambu", "5", nil)
	products.On("FindByID", ctx, p.ID).Return(p, nil)
	_, err := service.Add(ctx, userID, AddItemRequest{ProductID: p.ID, Quantity: 4})
	require.NoError(t, err)

	resp, err := service.UpdateQuantity(ctx, userID, p.ID, UpdateQuantityRequest{Quantity: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Items[0].Quantity)

	_, err = service.UpdateQuantity(ctx, userID, uuid.New(), UpdateQuantityRequest{Quantity: 2})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCartService_RemoveLastItem_YieldsEmptyView(t *testing.T) {
	service, products := newService(t)
	ctx := context.Background()
	userID := uuid.New()

	p := newProduct(t, "samai", "7.25", nil)
	products.On("FindByID", ctx, p.ID).Return(p, nil)
	_, err := service.Add(ctx, userID, AddItemRequest{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	resp, err := service.Remove(ctx, userID, p.ID)
	require.NoError(t, err)

	assert.True(t, resp.Empty)
	assert.NotNil(t, resp.Items)
	assert.Empty(t, resp.Items)
	assert.True(t, resp.Subtotal.IsZero())

	again, err := service.Get(ctx, userID)
	require.NoError(t, err)
	assert.True(t, again.Empty)
}

func TestCartService_Clear(t *testing.T) {
	service, products := newService(t)
	ctx := context.Background()
	userID := uuid.New()

	p := newProduct(t, "samai", "7.25", nil)
	products.On("FindByID", ctx, p.ID).Return(p, nil)
	_, err := service.Add(ctx, userID, AddItemRequest{ProductID: p.ID})
	require.NoError(t, err)

	require.NoError(t, service.Clear(ctx, userID))

	resp, err := service.Get(ctx, userID)
	require.NoError(t, err)
	assert.True(t, resp.Empty)
}
