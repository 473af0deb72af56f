package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	BaseModel
	Name        string           `gorm:"type:varchar(200);not null"`
	Description string           `gorm:"type:text"`
	Price       decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	Image       string           `gorm:"type:varchar(1024)"`
	Stock       int              `gorm:"not null;default:0"`
	Quantity    int              `gorm:"not null;default:1"`
	Offer       *decimal.Decimal `gorm:"type:decimal(5,2)"`
	Category    string           `gorm:"type:varchar(100);not null;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: aggregateFrom(m.BaseModel),
		Name:              m.Name,
		Description:       m.Description,
		Price:             m.Price,
		Image:             m.Image,
		Stock:             m.Stock,
		Quantity:          m.Quantity,
		Offer:             m.Offer,
		Category:          m.Category,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.Description = p.Description
	m.Price = p.Price
	m.Image = p.Image
	m.Stock = p.Stock
	m.Quantity = p.Quantity
	m.Offer = p.Offer
	m.Category = p.Category
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// CommentModel is the persistence model for product reviews.
type CommentModel struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Content   string    `gorm:"type:text;not null"`
	Rating    int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CommentModel) TableName() string {
	return "comments"
}

// ToDomain converts the persistence model to a domain Comment.
func (m *CommentModel) ToDomain() *catalog.Comment {
	return &catalog.Comment{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		ProductID:  m.ProductID,
		Content:    m.Content,
		Rating:     m.Rating,
	}
}

// CommentModelFromDomain creates a new persistence model from a domain Comment.
func CommentModelFromDomain(c *catalog.Comment) *CommentModel {
	m := &CommentModel{
		UserID:    c.UserID,
		ProductID: c.ProductID,
		Content:   c.Content,
		Rating:    c.Rating,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}
