package persistence

import (
	"context"

	"github.com/storefront/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormUnitOfWork runs work against repositories that share one transaction
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Do begins a transaction, hands fn repositories bound to it, and commits
// only if fn returns nil. Panics inside fn roll back and re-panic.
func (u *GormUnitOfWork) Do(ctx context.Context, fn func(repos trade.TxRepositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(trade.TxRepositories{
			Users:     NewGormUserRepository(tx),
			Addresses: NewGormAddressRepository(tx),
			Orders:    NewGormOrderRepository(tx),
		})
	})
}

var _ trade.UnitOfWork = (*GormUnitOfWork)(nil)
