package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/domain/trade"
)

// OrderListFilter represents filter options for order lists
type OrderListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending processing shipped delivered cancelled"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
}

// OrderListItem is an order without items
type OrderListItem struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// OrderItemResponse is one purchased line
type OrderItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductImage string          `json:"product_image"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Amount       decimal.Decimal `json:"amount"`
}

// OrderDetail is an order with its items and shipping address
type OrderDetail struct {
	OrderListItem
	ItemCount int                     `json:"item_count"`
	Items     []OrderItemResponse     `json:"items"`
	Address   *valueobject.AddressDTO `json:"address"`
}

// ToOrderListItem converts an order.
// Items are not loaded in lists, so the subtotal is derived from the tax-inclusive total.
func ToOrderListItem(o *trade.Order) OrderListItem {
	subtotal := valueobject.WithoutTax(o.TotalAmount)
	if len(o.Items) > 0 {
		subtotal = o.Subtotal()
	}
	return OrderListItem{
		ID:            o.ID,
		UserID:        o.UserID,
		Status:        o.Status.String(),
		PaymentMethod: string(o.PaymentMethod),
		Subtotal:      subtotal,
		Tax:           o.TotalAmount.Sub(subtotal),
		TotalAmount:   o.TotalAmount,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// ToOrderListItems converts a slice of orders
func ToOrderListItems(orders []trade.Order) []OrderListItem {
	items := make([]OrderListItem, len(orders))
	for i := range orders {
		items[i] = ToOrderListItem(&orders[i])
	}
	return items
}

// ToOrderDetail converts an order and its (possibly missing) address
func ToOrderDetail(o *trade.Order, address *customer.Address) *OrderDetail {
	detail := &OrderDetail{
		OrderListItem: ToOrderListItem(o),
		ItemCount:     o.ItemCount(),
		Items:         make([]OrderItemResponse, len(o.Items)),
	}
	for i := range o.Items {
		item := &o.Items[i]
		detail.Items[i] = OrderItemResponse{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
			Quantity:     item.Quantity,
			Price:        item.Price,
			Amount:       item.Amount(),
		}
	}
	if address != nil {
		dto := address.Shipping.ToDTO()
		detail.Address = &dto
	}
	return detail
}
