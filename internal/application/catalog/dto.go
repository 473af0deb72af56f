package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
)

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search   string `form:"search" binding:"max=100"`
	Category string `form:"category" binding:"max=100"`
	InStock  *bool  `form:"in_stock"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID             uuid.UUID        `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Price          decimal.Decimal  `json:"price"`
	EffectivePrice decimal.Decimal  `json:"effective_price"`
	Image          string           `json:"image"`
	Stock          int              `json:"stock"`
	Quantity       int              `json:"quantity"`
	Offer          *decimal.Decimal `json:"offer"`
	Category       string           `json:"category"`
	InStock        bool             `json:"in_stock"`
	LowStock       bool             `json:"low_stock"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// CategoriesResponse lists the categories in use and the full set offered to admins
type CategoriesResponse struct {
	InUse []string `json:"in_use"`
	Known []string `json:"known"`
}

// CreateCommentRequest represents a request to review a product
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
}

// CommentResponse represents a review in API responses
type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentListResponse is a product's reviews with the average rating
type CommentListResponse struct {
	Comments      []CommentResponse `json:"comments"`
	AverageRating decimal.Decimal   `json:"average_rating"`
	Count         int               `json:"count"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		EffectivePrice: p.EffectivePrice(),
		Image:          p.Image,
		Stock:          p.Stock,
		Quantity:       p.Quantity,
		Offer:          p.Offer,
		Category:       p.Category,
		InStock:        p.InStock(),
		LowStock:       p.IsLowStock(),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

// ToCommentResponse converts a domain Comment to CommentResponse
func ToCommentResponse(c *catalog.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		ProductID: c.ProductID,
		Content:   c.Content,
		Rating:    c.Rating,
		CreatedAt: c.CreatedAt,
	}
}
