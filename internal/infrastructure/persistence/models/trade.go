package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/trade"
)

// OrderModel is the persistence model for the Order aggregate root.
type OrderModel struct {
	BaseModel
	UserID        uuid.UUID           `gorm:"type:uuid;not null;index"`
	AddressID     *uuid.UUID          `gorm:"type:uuid"`
	TotalAmount   decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	Status        trade.OrderStatus   `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentMethod trade.PaymentMethod `gorm:"type:varchar(20);not null;default:'card'"`
	Items         []OrderItemModel    `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order.
// Items are included only if they were preloaded.
func (m *OrderModel) ToDomain() *trade.Order {
	order := &trade.Order{
		BaseAggregateRoot: aggregateFrom(m.BaseModel),
		UserID:            m.UserID,
		AddressID:         m.AddressID,
		TotalAmount:       m.TotalAmount,
		Status:            m.Status,
		PaymentMethod:     m.PaymentMethod,
		Items:             make([]trade.OrderItem, 0, len(m.Items)),
	}
	for i := range m.Items {
		order.Items = append(order.Items, m.Items[i].ToDomain())
	}
	return order
}

// FromDomain populates the persistence model (including items) from a domain Order.
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.UserID = o.UserID
	m.AddressID = o.AddressID
	m.TotalAmount = o.TotalAmount
	m.Status = o.Status
	m.PaymentMethod = o.PaymentMethod
	m.Items = make([]OrderItemModel, 0, len(o.Items))
	for i := range o.Items {
		m.Items = append(m.Items, *OrderItemModelFromDomain(&o.Items[i]))
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order.
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for one order line.
type OrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	LineNo    int             `gorm:"not null;default:0"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time       `gorm:"not null"`

	// Read-only columns filled from a join with products
	ProductName  string `gorm:"->;-:migration"`
	ProductImage string `gorm:"->;-:migration"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem.
func (m *OrderItemModel) ToDomain() trade.OrderItem {
	return trade.OrderItem{
		ID:           m.ID,
		OrderID:      m.OrderID,
		ProductID:    m.ProductID,
		Line:         m.LineNo,
		Quantity:     m.Quantity,
		Price:        m.Price,
		CreatedAt:    m.CreatedAt,
		ProductName:  m.ProductName,
		ProductImage: m.ProductImage,
	}
}

// OrderItemModelFromDomain creates a new persistence model from a domain OrderItem.
func OrderItemModelFromDomain(i *trade.OrderItem) *OrderItemModel {
	return &OrderItemModel{
		ID:        i.ID,
		OrderID:   i.OrderID,
		ProductID: i.ProductID,
		LineNo:    i.Line,
		Quantity:  i.Quantity,
		Price:     i.Price,
		CreatedAt: i.CreatedAt,
	}
}
