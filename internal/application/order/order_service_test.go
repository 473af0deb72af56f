package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context) (map[trade.OrderStatus]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[trade.OrderStatus]int64), args.Error(1)
}

func (m *MockOrderRepository) SumTotalAmount(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, order *trade.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	return m.Called(ctx, order).Error(0)
}

type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Address), args.Error(1)
}

func (m *MockAddressRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*customer.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Address), args.Error(1)
}

func (m *MockAddressRepository) Save(ctx context.Context, address *customer.Address) error {
	return m.Called(ctx, address).Error(0)
}

func (m *MockAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}

func newOrder(t *testing.T, userID uuid.UUID, addressID *uuid.UUID) *trade.Order {
	t.Helper()
	o, err := trade.NewOrder(userID, addressID, trade.PaymentMethodCard, []trade.LineInput{
		{ProductID: uuid.New(), Quantity: 2, Price: decimal.RequireFromString("10")},
		{ProductID: uuid.New(), Quantity: 1, Price: decimal.RequireFromString("5")},
	})
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func TestOrderService_ListMine_ScopesToUser(t *testing.T) {
	orders := new(MockOrderRepository)
	service := NewOrderService(orders, new(MockAddressRepository), nil)
	ctx := context.Background()
	userID := uuid.New()

	o := newOrder(t, userID, nil)
	o.Items = nil
	scoped := mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["user_id"] == userID && f.OrderBy == "created_at" && f.OrderDir == "desc"
	})
	orders.On("FindAll", ctx, scoped).Return([]trade.Order{*o}, nil)
	orders.On("Count", ctx, scoped).Return(int64(1), nil)

	items, total, err := service.ListMine(ctx, userID, OrderListFilter{})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.True(t, decimal.RequireFromString("27.5").Equal(items[0].TotalAmount))
	assert.True(t, decimal.RequireFromString("25").Equal(items[0].Subtotal))
	assert.True(t, decimal.RequireFromString("2.5").Equal(items[0].Tax))
}

func TestOrderService_GetMine(t *testing.T) {
	orders := new(MockOrderRepository)
	addresses := new(MockAddressRepository)
	service := NewOrderService(orders, addresses, nil)
	ctx := context.Background()
	userID := uuid.New()

	shipping, _ := valueobject.NewShippingAddress("1 Main St", "Springfield", "IL", "62701", "")
	address, _ := customer.NewAddress(userID, shipping)
	o := newOrder(t, userID, &address.ID)
	o.Items[0].ProductName = "Ragi"

	orders.On("FindByID", ctx, o.ID).Return(o, nil)
	addresses.On("FindByID", ctx, address.ID).Return(address, nil)

	detail, err := service.GetMine(ctx, userID, o.ID)

	require.NoError(t, err)
	assert.Equal(t, 3, detail.ItemCount)
	assert.Equal(t, "Ragi", detail.Items[0].ProductName)
	assert.True(t, decimal.NewFromInt(20).Equal(detail.Items[0].Amount))
	require.NotNil(t, detail.Address)
	assert.Equal(t, "Springfield", detail.Address.City)
}

func TestOrderService_GetMine_OtherUser(t *testing.T) {
	orders := new(MockOrderRepository)
	service := NewOrderService(orders, new(MockAddressRepository), nil)
	ctx := context.Background()

	o := newOrder(t, uuid.New(), nil)
	orders.On("FindByID", ctx, o.ID).Return(o, nil)

	_, err := service.GetMine(ctx, uuid.New(), o.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestOrderService_Get_DeletedAddress(t *testing.T) {
	orders := new(MockOrderRepository)
	addresses := new(MockAddressRepository)
	service := NewOrderService(orders, addresses, nil)
	ctx := context.Background()

	addressID := uuid.New()
	o := newOrder(t, uuid.New(), &addressID)
	orders.On("FindByID", ctx, o.ID).Return(o, nil)
	addresses.On("FindByID", ctx, addressID).Return(nil, shared.ErrNotFound)

	detail, err := service.Get(ctx, o.ID)

	require.NoError(t, err)
	assert.Nil(t, detail.Address)
}

func TestOrderService_List_StatusFilter(t *testing.T) {
	orders := new(MockOrderRepository)
	service := NewOrderService(orders, new(MockAddressRepository), nil)
	ctx := context.Background()

	byStatus := mock.MatchedBy(func(f shared.Filter) bool {
		_, scoped := f.Filters["user_id"]
		return f.Filters["status"] == trade.OrderStatusShipped && !scoped && f.Page == 2
	})
	orders.On("FindAll", ctx, byStatus).Return([]trade.Order{}, nil)
	orders.On("Count", ctx, byStatus).Return(int64(0), nil)

	items, total, err := service.List(ctx, OrderListFilter{Status: "shipped", Page: 2})

	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, total)
}

func TestOrderService_UpdateStatus_AnyTransition(t *testing.T) {
	orders := new(MockOrderRepository)
	publisher := new(MockEventPublisher)
	service := NewOrderService(orders, new(MockAddressRepository), nil)
	service.SetEventPublisher(publisher)
	ctx := context.Background()

	o := newOrder(t, uuid.New(), nil)
	o.Status = trade.OrderStatusDelivered
	orders.On("FindByID", ctx, o.ID).Return(o, nil)
	orders.On("Save", ctx, o).Return(nil)
	publisher.On("Publish", ctx, mock.Anything).Return(nil)

	detail, err := service.UpdateStatus(ctx, o.ID, "pending")

	require.NoError(t, err)
	assert.Equal(t, "pending", detail.Status)
	orders.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestOrderService_UpdateStatus_Invalid(t *testing.T) {
	orders := new(MockOrderRepository)
	service := NewOrderService(orders, new(MockAddressRepository), nil)

	_, err := service.UpdateStatus(context.Background(), uuid.New(), "lost")

	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	orders.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}
