package admin

import (
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
)

// ProductRequest creates or fully replaces a product
type ProductRequest struct {
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Description string           `json:"description" binding:"max=2000"`
	Price       decimal.Decimal  `json:"price"`
	Image       string           `json:"image" binding:"omitempty,max=500"`
	Stock       int              `json:"stock" binding:"min=0"`
	Quantity    int              `json:"quantity" binding:"omitempty,min=1"`
	Offer       *decimal.Decimal `json:"offer"`
	Category    string           `json:"category" binding:"required,max=100"`
}

func (r ProductRequest) toDetails() catalog.ProductDetails {
	quantity := r.Quantity
	if quantity == 0 {
		quantity = 1
	}
	return catalog.ProductDetails{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Image:       r.Image,
		Stock:       r.Stock,
		Quantity:    quantity,
		Offer:       r.Offer,
		Category:    r.Category,
	}
}

// ImageUploadRequest asks for a presigned product image upload
type ImageUploadRequest struct {
	ContentType string `json:"content_type" binding:"required,oneof=image/jpeg image/png image/webp image/gif"`
}

// CategoryCount is the number of products in a category
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// DashboardResponse holds the admin overview figures
type DashboardResponse struct {
	TotalProducts  int64            `json:"total_products"`
	TotalOrders    int64            `json:"total_orders"`
	TotalRevenue   decimal.Decimal  `json:"total_revenue"`
	LowStock       int64            `json:"low_stock"`
	Categories     []CategoryCount  `json:"categories"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
}
