package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements trade.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order and loads its items with current product name and image
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	db := r.db.WithContext(ctx)

	var model models.OrderModel
	if err := db.First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}

	if err := db.Table("order_items").
		Select("order_items.*, products.name AS product_name, products.image AS product_image").
		Joins("LEFT JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ?", id).
		Order("order_items.line_no ASC, order_items.created_at ASC, order_items.id ASC").
		Find(&model.Items).Error; err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}

	return model.ToDomain(), nil
}

// FindAll finds orders matching the filter, without items
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Order, error) {
	query := applyOrderFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter).
		Order(orderClause(filter, OrderSortFields, "created_at"))
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var rows []models.OrderModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]trade.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, *rows[i].ToDomain())
	}
	return orders, nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := applyOrderFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter).Count(&count).Error
	return count, err
}

// CountByStatus returns order counts grouped by status
func (r *GormOrderRepository) CountByStatus(ctx context.Context) (map[trade.OrderStatus]int64, error) {
	var rows []struct {
		Status trade.OrderStatus
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[trade.OrderStatus]int64, len(trade.AllOrderStatuses))
	for _, s := range trade.AllOrderStatuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// SumTotalAmount returns the revenue across all orders
func (r *GormOrderRepository) SumTotalAmount(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Select("SUM(total_amount)").
		Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// Create inserts the order row followed by its items
func (r *GormOrderRepository) Create(ctx context.Context, order *trade.Order) error {
	model := models.OrderModelFromDomain(order)
	db := r.db.WithContext(ctx)

	if err := db.Omit("Items").Create(model).Error; err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	if len(model.Items) == 0 {
		return nil
	}
	if err := db.Create(&model.Items).Error; err != nil {
		return fmt.Errorf("insert order items: %w", err)
	}
	return nil
}

// Save updates the mutable columns of an order
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"status":     order.Status,
			"updated_at": order.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func applyOrderFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if status, ok := filter.Filters["status"]; ok {
		switch s := status.(type) {
		case trade.OrderStatus:
			if s != "" {
				query = query.Where("status = ?", s)
			}
		case string:
			if s != "" {
				query = query.Where("status = ?", s)
			}
		}
	}
	if userID, ok := filter.Filters["user_id"].(uuid.UUID); ok && userID != uuid.Nil {
		query = query.Where("user_id = ?", userID)
	}
	return query
}

var _ trade.OrderRepository = (*GormOrderRepository)(nil)
