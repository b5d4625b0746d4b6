package contracts

import (
	"context"
	"time"

	"github.com/light-bringer/bijoux-service/internal/app/order/domain"
	"github.com/light-bringer/bijoux-service/internal/pkg/money"
)

// OrderDTO is a data transfer object for order queries.
type OrderDTO struct {
	OrderID       string
	CustomerName  string
	CustomerPhone string
	Items         []domain.OrderItem
	Total         *money.Money
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ListFilter defines filtering options for listing orders.
type ListFilter struct {
	Status   string
	PageSize int
	Offset   int
}

// ListResult contains order list results.
type ListResult struct {
	Orders     []*OrderDTO
	TotalCount int64
}

// RevenueStats summarizes order revenue for the back-office dashboard.
// Recomputed from the orders on every request, never persisted.
type RevenueStats struct {
	TotalRevenue      *money.Money
	TotalSales        int64
	MonthlyRevenue    *money.Money
	PendingOrders     int64
	AverageOrderValue *money.Money
}

// ReadModel defines the interface for order queries.
type ReadModel interface {
	// GetOrderByID retrieves an order DTO by ID
	GetOrderByID(ctx context.Context, orderID string) (*OrderDTO, error)

	// ListOrders retrieves a filtered list of orders, newest first
	ListOrders(ctx context.Context, filter *ListFilter) (*ListResult, error)

	// RevenueStats aggregates revenue over all orders. monthStart bounds
	// the monthly revenue window.
	RevenueStats(ctx context.Context, monthStart time.Time) (*RevenueStats, error)
}
