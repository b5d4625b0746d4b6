package m_product

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the products table.
type Data struct {
	ProductID        string             `spanner:"product_id"`
	Name             string             `spanner:"name"`
	Description      string             `spanner:"description"`
	Category         string             `spanner:"category"`
	PriceNumerator   int64              `spanner:"price_numerator"`
	PriceDenominator int64              `spanner:"price_denominator"`
	Stock            int64              `spanner:"stock"`
	DiscountPercent  int64              `spanner:"discount_percent"`
	IsNew            bool               `spanner:"is_new"`
	IsBestSeller     bool               `spanner:"is_best_seller"`
	ImageURL         string             `spanner:"image_url"`
	HoverImageURL    spanner.NullString `spanner:"hover_image_url"`
	Status           string             `spanner:"status"`
	CreatedAt        time.Time          `spanner:"created_at"`
	UpdatedAt        time.Time          `spanner:"updated_at"`
	ArchivedAt       spanner.NullTime   `spanner:"archived_at"`
}

// Columns lists every column of the products table, in schema order.
// Read paths use this to avoid drifting column lists.
func Columns() []string {
	return []string{
		ProductID,
		Name,
		Description,
		Category,
		PriceNumerator,
		PriceDenominator,
		Stock,
		DiscountPercent,
		IsNew,
		IsBestSeller,
		ImageURL,
		HoverImageURL,
		Status,
		CreatedAt,
		UpdatedAt,
		ArchivedAt,
	}
}
