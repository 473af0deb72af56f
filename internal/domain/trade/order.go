package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// OrderStatus represents the fulfilment status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// AllOrderStatuses lists every status in display order
var AllOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// PaymentMethod is how the customer paid
type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodPayPal PaymentMethod = "paypal"
)

// IsValid checks if the payment method is supported
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCard || m == PaymentMethodPayPal
}

// OrderItem is one purchased product with its price at the time of purchase
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Line      int // 1-based position within the order
	Quantity  int
	Price     decimal.Decimal // unit price snapshot
	CreatedAt time.Time

	// Populated on read from the current catalog row; empty if the product was deleted
	ProductName  string
	ProductImage string
}

// Amount returns Price × Quantity
func (i *OrderItem) Amount() decimal.Decimal {
	return valueobject.LineTotal(i.Price, i.Quantity)
}

// LineInput describes one line used to build an order
type LineInput struct {
	ProductID uuid.UUID
	Quantity  int
	Price     decimal.Decimal
}

// Order is a placed purchase. It is the aggregate root for its items.
type Order struct {
	shared.BaseAggregateRoot
	UserID        uuid.UUID
	AddressID     *uuid.UUID
	Items         []OrderItem
	TotalAmount   decimal.Decimal // tax inclusive
	Status        OrderStatus
	PaymentMethod PaymentMethod
}

// NewOrder builds a pending order whose total is the item subtotal plus tax
func NewOrder(userID uuid.UUID, addressID *uuid.UUID, method PaymentMethod, lines []LineInput) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}
	if method == "" {
		method = PaymentMethodCard
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method must be card or paypal")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		AddressID:         addressID,
		Status:            OrderStatusPending,
		PaymentMethod:     method,
		Items:             make([]OrderItem, 0, len(lines)),
	}

	for i, l := range lines {
		if l.ProductID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
		}
		if l.Quantity < 1 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
		}
		if l.Price.IsNegative() {
			return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
		}
		o.Items = append(o.Items, OrderItem{
			ID:        uuid.New(),
			OrderID:   o.ID,
			ProductID: l.ProductID,
			Line:      i + 1,
			Quantity:  l.Quantity,
			Price:     l.Price,
			CreatedAt: o.CreatedAt,
		})
	}
	o.TotalAmount = valueobject.WithTax(o.Subtotal())

	o.AddDomainEvent(NewOrderPlacedEvent(o))
	return o, nil
}

// Subtotal returns Σ price × quantity over the items
func (o *Order) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Amount())
	}
	return total
}

// Tax returns the tax portion of the order
func (o *Order) Tax() decimal.Decimal {
	return valueobject.TaxOn(o.Subtotal())
}

// ItemCount returns the number of units across all items
func (o *Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

// BelongsTo returns true if the order was placed by userID
func (o *Order) BelongsTo(userID uuid.UUID) bool {
	return o.UserID == userID
}

// UpdateStatus sets the status. Any valid status may follow any other.
func (o *Order) UpdateStatus(status OrderStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+string(status))
	}
	if o.Status == status {
		return nil
	}

	old := o.Status
	o.Status = status
	o.UpdatedAt = time.Now()
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, old))
	return nil
}
