package domain

import (
	"github.com/light-bringer/bijoux-service/internal/pkg/money"
)

// StatsInput is the slice of a product that catalog aggregation needs.
type StatsInput struct {
	Stock        int64
	IsBestSeller bool
	Price        *money.Money
}

// CatalogSummary is the aggregated dashboard view over the catalog.
type CatalogSummary struct {
	TotalProducts    int64
	LowStockProducts int64
	BestSellersCount int64
	AveragePrice     *money.Money
}

// SummarizeCatalog aggregates counts and average price over the given
// products. A product is low on stock when its stock is below
// LowStockThreshold. The average is zero over an empty catalog.
func SummarizeCatalog(products []StatsInput) (*CatalogSummary, error) {
	summary := &CatalogSummary{
		AveragePrice: money.Zero(),
	}
	sum := money.Zero()

	for _, product := range products {
		summary.TotalProducts++
		if product.Stock < LowStockThreshold {
			summary.LowStockProducts++
		}
		if product.IsBestSeller {
			summary.BestSellersCount++
		}
		sum = sum.Add(product.Price)
	}

	if summary.TotalProducts > 0 {
		avg, err := sum.DivideInt(summary.TotalProducts)
		if err != nil {
			return nil, err
		}
		summary.AveragePrice = avg
	}

	return summary, nil
}
