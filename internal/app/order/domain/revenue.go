package domain

import (
	"time"

	"github.com/light-bringer/bijoux-service/internal/pkg/money"
)

// RevenueInput is the slice of an order that revenue aggregation needs.
type RevenueInput struct {
	Status    OrderStatus
	Total     *money.Money
	CreatedAt time.Time
}

// RevenueSummary is the aggregated dashboard view over a set of orders.
type RevenueSummary struct {
	TotalRevenue      *money.Money
	TotalSales        int64
	MonthlyRevenue    *money.Money
	PendingOrders     int64
	AverageOrderValue *money.Money
}

// SummarizeRevenue aggregates revenue over the given orders. Only
// paid, shipped and completed orders count as revenue; monthly revenue
// is restricted to orders created at or after monthStart. The average
// is zero when there are no sales.
func SummarizeRevenue(orders []RevenueInput, monthStart time.Time) (*RevenueSummary, error) {
	summary := &RevenueSummary{
		TotalRevenue:      money.Zero(),
		MonthlyRevenue:    money.Zero(),
		AverageOrderValue: money.Zero(),
	}

	for _, order := range orders {
		if order.Status == StatusPending {
			summary.PendingOrders++
		}

		if !statusCountsAsRevenue(order.Status) {
			continue
		}

		summary.TotalRevenue = summary.TotalRevenue.Add(order.Total)
		summary.TotalSales++

		if !order.CreatedAt.Before(monthStart) {
			summary.MonthlyRevenue = summary.MonthlyRevenue.Add(order.Total)
		}
	}

	if summary.TotalSales > 0 {
		avg, err := summary.TotalRevenue.DivideInt(summary.TotalSales)
		if err != nil {
			return nil, err
		}
		summary.AverageOrderValue = avg
	}

	return summary, nil
}

func statusCountsAsRevenue(status OrderStatus) bool {
	for _, s := range RevenueStatuses {
		if status == s {
			return true
		}
	}
	return false
}
