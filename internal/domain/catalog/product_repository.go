package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// CategoryCount is the number of products in one category
type CategoryCount struct {
	Category string
	Count    int64
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAll finds all products matching the filter.
	// Supported filter keys: "category".
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Count counts products matching the filter (pagination ignored)
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Categories returns the distinct categories in use, sorted by name
	Categories(ctx context.Context) ([]string, error)

	// CountByCategory returns product counts grouped by category
	CountByCategory(ctx context.Context) ([]CategoryCount, error)

	// CountLowStock counts products whose stock is below threshold
	CountLowStock(ctx context.Context, threshold int) (int64, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error
}
