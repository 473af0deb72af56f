package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindAll finds orders without items, newest first by default.
	// Supported filter keys: "status", "user_id".
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// Count counts orders matching the filter (pagination ignored)
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus returns order counts grouped by status
	CountByStatus(ctx context.Context) (map[OrderStatus]int64, error)

	// SumTotalAmount returns Σ total_amount over all orders
	SumTotalAmount(ctx context.Context) (decimal.Decimal, error)

	// Create inserts an order together with its items
	Create(ctx context.Context, order *Order) error

	// Save updates the order row; items are immutable once placed
	Save(ctx context.Context, order *Order) error
}

// TxRepositories are repositories bound to one database transaction
type TxRepositories struct {
	Users     identity.UserRepository
	Addresses customer.AddressRepository
	Orders    OrderRepository
}

// UnitOfWork runs fn inside a transaction; any error returned by fn rolls it back
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos TxRepositories) error) error
}
