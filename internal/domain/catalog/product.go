package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// LowStockThreshold is the stock level below which a product counts as low stock
const LowStockThreshold = 10

// KnownCategories lists the categories offered by the admin product form
var KnownCategories = []string{
	"Herbal Power Mix",
	"Rice Variety",
	"Millet Flour Variety",
	"Idli Podi Variety",
	"Beauty and Care",
	"Salt Items",
	"Candies and Sweets",
	"Millets",
}

// Product represents an item in the storefront catalog.
// It is the aggregate root for product-related operations.
type Product struct {
	shared.BaseAggregateRoot
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
	Stock       int
	Quantity    int // units per pack
	Offer       *decimal.Decimal
	Category    string
}

// ProductDetails carries the mutable attributes of a product
type ProductDetails struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
	Stock       int
	Quantity    int
	Offer       *decimal.Decimal
	Category    string
}

// NewProduct creates a new product after validating its details
func NewProduct(d ProductDetails) (*Product, error) {
	d = normalizeDetails(d)
	if err := validateDetails(d); err != nil {
		return nil, err
	}

	product := &Product{BaseAggregateRoot: shared.NewBaseAggregateRoot()}
	product.apply(d)

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update replaces all mutable attributes of the product
func (p *Product) Update(d ProductDetails) error {
	d = normalizeDetails(d)
	if err := validateDetails(d); err != nil {
		return err
	}

	oldPrice := p.Price
	p.apply(d)
	p.UpdatedAt = time.Now()

	p.AddDomainEvent(NewProductUpdatedEvent(p))
	if !oldPrice.Equal(p.Price) {
		p.AddDomainEvent(NewProductPriceChangedEvent(p, oldPrice))
	}

	return nil
}

// EffectivePrice returns the price after applying the offer
func (p *Product) EffectivePrice() decimal.Decimal {
	return valueobject.ApplyOffer(p.Price, p.Offer)
}

// HasOffer returns true if a non-zero offer is set
func (p *Product) HasOffer() bool {
	return p.Offer != nil && !p.Offer.IsZero()
}

// IsLowStock returns true when stock is below LowStockThreshold
func (p *Product) IsLowStock() bool {
	return p.Stock < LowStockThreshold
}

// InStock returns true when at least one unit is available
func (p *Product) InStock() bool {
	return p.Stock > 0
}

func (p *Product) apply(d ProductDetails) {
	p.Name = d.Name
	p.Description = d.Description
	p.Price = d.Price
	p.Image = d.Image
	p.Stock = d.Stock
	p.Quantity = d.Quantity
	p.Offer = d.Offer
	p.Category = d.Category
}

func normalizeDetails(d ProductDetails) ProductDetails {
	d.Name = strings.TrimSpace(d.Name)
	d.Category = strings.TrimSpace(d.Category)
	d.Image = strings.TrimSpace(d.Image)
	return d
}

func validateDetails(d ProductDetails) error {
	if d.Name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(d.Name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if d.Category == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Product category cannot be empty")
	}
	if d.Price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if d.Stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	if d.Quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if d.Offer != nil && !valueobject.IsValidOffer(*d.Offer) {
		return shared.NewDomainError("INVALID_OFFER", "Offer must be between 0 and 100")
	}
	return nil
}
