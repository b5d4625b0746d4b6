package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	catalogcontracts "github.com/light-bringer/bijoux-service/internal/app/catalog/contracts"
	ordercontracts "github.com/light-bringer/bijoux-service/internal/app/order/contracts"
)

type revenueStatsQuery interface {
	Execute(ctx context.Context) (*ordercontracts.RevenueStats, error)
}

type catalogStatsQuery interface {
	Execute(ctx context.Context) (*catalogcontracts.CatalogStats, error)
}

// StatsHandler serves the back-office dashboard aggregates.
type StatsHandler struct {
	revenue revenueStatsQuery
	catalog catalogStatsQuery
	logger  *zap.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(revenue revenueStatsQuery, catalog catalogStatsQuery, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		revenue: revenue,
		catalog: catalog,
		logger:  logger,
	}
}

// Revenue handles GET /api/v1/stats/revenue.
func (h *StatsHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	stats, err := h.revenue.Execute(r.Context())
	if err != nil {
		h.logger.Error("revenue stats failed", zap.Error(err))
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"total_revenue":       stats.TotalRevenue.String(),
		"total_sales":         stats.TotalSales,
		"monthly_revenue":     stats.MonthlyRevenue.String(),
		"pending_orders":      stats.PendingOrders,
		"average_order_value": stats.AverageOrderValue.String(),
	})
}

// Catalog handles GET /api/v1/stats/catalog.
func (h *StatsHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	stats, err := h.catalog.Execute(r.Context())
	if err != nil {
		h.logger.Error("catalog stats failed", zap.Error(err))
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"total_products":     stats.TotalProducts,
		"low_stock_products": stats.LowStockProducts,
		"best_sellers_count": stats.BestSellersCount,
		"average_price":      stats.AveragePrice.String(),
	})
}
