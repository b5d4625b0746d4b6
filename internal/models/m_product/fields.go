package m_product

// Field name constants for the products table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "products"

	ProductID        = "product_id"
	Name             = "name"
	Description      = "description"
	Category         = "category"
	PriceNumerator   = "price_numerator"
	PriceDenominator = "price_denominator"
	Stock            = "stock"
	DiscountPercent  = "discount_percent"
	IsNew            = "is_new"
	IsBestSeller     = "is_best_seller"
	ImageURL         = "image_url"
	HoverImageURL    = "hover_image_url"
	Status           = "status"
	CreatedAt        = "created_at"
	UpdatedAt        = "updated_at"
	ArchivedAt       = "archived_at"
)
