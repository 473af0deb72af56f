package admin

import (
	"context"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
)

// DashboardService computes the admin overview
type DashboardService struct {
	productRepo catalog.ProductRepository
	orderRepo   trade.OrderRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(productRepo catalog.ProductRepository, orderRepo trade.OrderRepository) *DashboardService {
	return &DashboardService{
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// Get returns catalog and order totals
func (s *DashboardService) Get(ctx context.Context) (*DashboardResponse, error) {
	all := shared.DefaultFilter()

	totalProducts, err := s.productRepo.Count(ctx, all)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.productRepo.CountLowStock(ctx, catalog.LowStockThreshold)
	if err != nil {
		return nil, err
	}
	categories, err := s.productRepo.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}

	totalOrders, err := s.orderRepo.Count(ctx, all)
	if err != nil {
		return nil, err
	}
	revenue, err := s.orderRepo.SumTotalAmount(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.orderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	resp := &DashboardResponse{
		TotalProducts:  totalProducts,
		TotalOrders:    totalOrders,
		TotalRevenue:   revenue,
		LowStock:       lowStock,
		Categories:     make([]CategoryCount, len(categories)),
		OrdersByStatus: make(map[string]int64, len(trade.AllOrderStatuses)),
	}
	for i, c := range categories {
		resp.Categories[i] = CategoryCount{Category: c.Category, Count: c.Count}
	}
	for _, status := range trade.AllOrderStatuses {
		resp.OrdersByStatus[status.String()] = byStatus[status]
	}
	return resp, nil
}
