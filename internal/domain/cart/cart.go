// Package cart models the per-user shopping cart.
package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Line is one product in the cart with the desired quantity
type Line struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

// Total returns Price × Quantity for the line
func (l Line) Total() decimal.Decimal {
	return valueobject.LineTotal(l.Price, l.Quantity)
}

// Cart is an ordered list of lines keyed by product ID
type Cart struct {
	UserID    uuid.UUID `json:"user_id"`
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New returns an empty cart for a user
func New(userID uuid.UUID) *Cart {
	return &Cart{
		UserID:    userID,
		Lines:     make([]Line, 0),
		UpdatedAt: time.Now(),
	}
}

// AddItem appends a line, or increments the quantity if the product is already present.
// Quantities below 1 count as 1. The name, price and image of an existing line are refreshed.
func (c *Cart) AddItem(line Line) error {
	if line.ProductID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if line.Price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if line.Quantity < 1 {
		line.Quantity = 1
	}

	if i := c.indexOf(line.ProductID); i >= 0 {
		existing := &c.Lines[i]
		existing.Quantity += line.Quantity
		existing.Name = line.Name
		existing.Price = line.Price
		existing.Image = line.Image
	} else {
		c.Lines = append(c.Lines, line)
	}
	c.touch()
	return nil
}

// UpdateQuantity sets the quantity of an existing line, clamped to at least 1
func (c *Cart) UpdateQuantity(productID uuid.UUID, quantity int) error {
	i := c.indexOf(productID)
	if i < 0 {
		return shared.NewDomainError("NOT_FOUND", "Item is not in the cart")
	}
	if quantity < 1 {
		quantity = 1
	}
	c.Lines[i].Quantity = quantity
	c.touch()
	return nil
}

// Remove deletes the line for productID; missing products are ignored
func (c *Cart) Remove(productID uuid.UUID) {
	i := c.indexOf(productID)
	if i < 0 {
		return
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	c.touch()
}

// Clear removes every line
func (c *Cart) Clear() {
	c.Lines = make([]Line, 0)
	c.touch()
}

// Subtotal returns Σ price × quantity over all lines
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Total())
	}
	return total
}

// ItemCount returns Σ quantity over all lines
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// IsEmpty returns true when the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Line returns the line for productID
func (c *Cart) Line(productID uuid.UUID) (Line, bool) {
	if i := c.indexOf(productID); i >= 0 {
		return c.Lines[i], true
	}
	return Line{}, false
}

func (c *Cart) indexOf(productID uuid.UUID) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now()
}
