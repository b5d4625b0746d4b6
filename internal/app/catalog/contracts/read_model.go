package contracts

import (
	"context"
	"time"

	"github.com/light-bringer/bijoux-service/internal/pkg/money"
)

// ProductDTO is a data transfer object for product queries.
// Prices stay exact (money.Money) so the cart can snapshot them without
// rounding; transport formats them for display.
type ProductDTO struct {
	ProductID       string
	Name            string
	Description     string
	Category        string
	Price           *money.Money
	EffectivePrice  *money.Money
	Stock           int64
	DiscountPercent int64
	IsNew           bool
	IsBestSeller    bool
	ImageURL        string
	HoverImageURL   string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ListFilter defines filtering options for listing products.
type ListFilter struct {
	Category string
	Status   string
	PageSize int
	Offset   int
}

// ListResult contains product list results.
type ListResult struct {
	Products   []*ProductDTO
	TotalCount int64
}

// CatalogStats summarizes the catalog for the back-office dashboard.
type CatalogStats struct {
	TotalProducts    int64
	LowStockProducts int64
	BestSellersCount int64
	AveragePrice     *money.Money
}

// ReadModel defines the interface for product queries.
// Read models bypass the domain layer; they return DTOs directly.
type ReadModel interface {
	// GetProductByID retrieves a product DTO by ID
	GetProductByID(ctx context.Context, productID string) (*ProductDTO, error)

	// ListProducts retrieves a filtered list of products, newest first
	ListProducts(ctx context.Context, filter *ListFilter) (*ListResult, error)

	// CatalogStats aggregates counts and average price over the
	// non-archived catalog
	CatalogStats(ctx context.Context) (*CatalogStats, error)
}
