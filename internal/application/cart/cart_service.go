// Package cart implements the per-user shopping cart.
package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
)

// AddItemRequest adds a product to the cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"omitempty,min=1,max=999"`
}

// UpdateQuantityRequest sets the quantity of a cart line.
// Values below 1 are stored as 1.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"max=999"`
}

// LineResponse is one cart line in API responses
type LineResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
}

// CartResponse is the cart view
type CartResponse struct {
	Items     []LineResponse  `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	ItemCount int             `json:"item_count"`
	Empty     bool            `json:"empty"`
}

// ToCartResponse converts a domain cart to its view
func ToCartResponse(c *cart.Cart) *CartResponse {
	resp := &CartResponse{
		Items:     make([]LineResponse, len(c.Lines)),
		Subtotal:  c.Subtotal(),
		ItemCount: c.ItemCount(),
		Empty:     c.IsEmpty(),
	}
	for i, l := range c.Lines {
		resp.Items[i] = LineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Image:     l.Image,
			Quantity:  l.Quantity,
			Total:     l.Total(),
		}
	}
	return resp
}

// CartService handles cart operations for the authenticated user
type CartService struct {
	store       cart.Store
	productRepo catalog.ProductRepository
}

// NewCartService creates a new CartService
func NewCartService(store cart.Store, productRepo catalog.ProductRepository) *CartService {
	return &CartService{
		store:       store,
		productRepo: productRepo,
	}
}

// Get returns the user's cart
func (s *CartService) Get(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	c, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToCartResponse(c), nil
}

// Add puts a product in the cart, snapshotting its current name, effective price and image
func (s *CartService) Add(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	c, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = c.AddItem(cart.Line{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.EffectivePrice(),
		Image:     product.Image,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return nil, err
	}

	return s.save(ctx, c)
}

// UpdateQuantity sets the quantity of a line already in the cart
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, req UpdateQuantityRequest) (*CartResponse, error) {
	c, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := c.UpdateQuantity(productID, req.Quantity); err != nil {
		return nil, err
	}
	return s.save(ctx, c)
}

// Remove deletes a line from the cart
func (s *CartService) Remove(ctx context.Context, userID, productID uuid.UUID) (*CartResponse, error) {
	c, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.Remove(productID)
	return s.save(ctx, c)
}

// Clear empties the cart
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.store.Delete(ctx, userID)
}

func (s *CartService) save(ctx context.Context, c *cart.Cart) (*CartResponse, error) {
	if c.IsEmpty() {
		if err := s.store.Delete(ctx, c.UserID); err != nil {
			return nil, err
		}
		return ToCartResponse(c), nil
	}
	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return ToCartResponse(c), nil
}
