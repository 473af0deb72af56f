// Package models contains GORM-specific persistence models that map to database tables.
// Domain entities stay free of GORM tags; each model here carries the table mapping
// and the ToDomain/FromDomain mappers used by the repositories.
//
// Structure:
//   - base.go: BaseModel shared by every table
//   - identity.go: users
//   - catalog.go: products, comments
//   - customer.go: addresses
//   - trade.go: orders, order_items
package models
