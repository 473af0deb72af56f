// Package catalog implements the read side of the storefront catalog and product reviews.
package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductService handles catalog browsing
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// List returns a page of products and the total number of matches
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := filter.ToDomain()

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// GetByID returns a single product
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// Categories returns the categories that have products plus the known category list
func (s *ProductService) Categories(ctx context.Context) (*CategoriesResponse, error) {
	inUse, err := s.productRepo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	known := make([]string, len(catalog.KnownCategories))
	copy(known, catalog.KnownCategories)
	return &CategoriesResponse{InUse: inUse, Known: known}, nil
}

// ToDomain converts the request filter to a repository filter, applying defaults
func (f ProductListFilter) ToDomain() shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	filter.Search = f.Search
	if f.Category != "" {
		filter.Filters["category"] = f.Category
	}
	if f.InStock != nil {
		filter.Filters["in_stock"] = *f.InStock
	}
	return filter
}
