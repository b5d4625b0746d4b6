package m_order

// Field name constants for the orders table.
const (
	TableName = "orders"

	OrderID          = "order_id"
	CustomerName     = "customer_name"
	CustomerPhone    = "customer_phone"
	Items            = "items"
	TotalNumerator   = "total_numerator"
	TotalDenominator = "total_denominator"
	Status           = "status"
	CreatedAt        = "created_at"
	UpdatedAt        = "updated_at"
)
