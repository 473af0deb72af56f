// Package order implements the customer's order history and the admin order console.
package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// OrderService serves order reads for customers and admins, and admin status updates
type OrderService struct {
	orderRepo      trade.OrderRepository
	addressRepo    customer.AddressRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo trade.OrderRepository, addressRepo customer.AddressRepository, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orderRepo:   orderRepo,
		addressRepo: addressRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the publisher used for status change events
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// ListMine returns the user's orders, newest first
func (s *OrderService) ListMine(ctx context.Context, userID uuid.UUID, filter OrderListFilter) ([]OrderListItem, int64, error) {
	domainFilter := filter.toDomain()
	domainFilter.Filters["user_id"] = userID
	return s.list(ctx, domainFilter)
}

// GetMine returns one of the user's orders. Another user's order is reported as not found.
func (s *OrderService) GetMine(ctx context.Context, userID, orderID uuid.UUID) (*OrderDetail, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.BelongsTo(userID) {
		return nil, shared.ErrNotFound
	}
	return s.detail(ctx, o)
}

// List returns all orders for admins, newest first, optionally filtered by status
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderListItem, int64, error) {
	return s.list(ctx, filter.toDomain())
}

// Get returns any order for admins
func (s *OrderService) Get(ctx context.Context, orderID uuid.UUID) (*OrderDetail, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, o)
}

// UpdateStatus writes any valid status regardless of the current one
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*OrderDetail, error) {
	next := trade.OrderStatus(status)
	if !next.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown order status: "+status)
	}

	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	previous := o.Status
	if err := o.UpdateStatus(next); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", o.ID.String()),
		zap.String("from", previous.String()),
		zap.String("to", next.String()),
	)
	s.publish(ctx, o)
	return s.detail(ctx, o)
}

func (s *OrderService) list(ctx context.Context, filter shared.Filter) ([]OrderListItem, int64, error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToOrderListItems(orders), total, nil
}

// detail attaches the shipping address; a deleted address is shown as missing
func (s *OrderService) detail(ctx context.Context, o *trade.Order) (*OrderDetail, error) {
	var address *customer.Address
	if o.AddressID != nil {
		a, err := s.addressRepo.FindByID(ctx, *o.AddressID)
		switch {
		case err == nil:
			address = a
		case !errors.Is(err, shared.ErrNotFound):
			return nil, err
		}
	}
	return ToOrderDetail(o, address), nil
}

func (s *OrderService) publish(ctx context.Context, o *trade.Order) {
	events := o.GetDomainEvents()
	o.ClearDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish order events", zap.String("order_id", o.ID.String()), zap.Error(err))
	}
}

func (f OrderListFilter) toDomain() shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.Status != "" {
		filter.Filters["status"] = trade.OrderStatus(f.Status)
	}
	return filter
}
