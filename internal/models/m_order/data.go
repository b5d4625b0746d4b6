package m_order

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the orders table.
// Items holds the order lines as a JSON document; order lines are only
// read and written as a whole, never queried individually.
type Data struct {
	OrderID          string           `spanner:"order_id"`
	CustomerName     string           `spanner:"customer_name"`
	CustomerPhone    string           `spanner:"customer_phone"`
	Items            spanner.NullJSON `spanner:"items"`
	TotalNumerator   int64            `spanner:"total_numerator"`
	TotalDenominator int64            `spanner:"total_denominator"`
	Status           string           `spanner:"status"`
	CreatedAt        time.Time        `spanner:"created_at"`
	UpdatedAt        time.Time        `spanner:"updated_at"`
}

// Columns lists every column of the orders table, in schema order.
func Columns() []string {
	return []string{
		OrderID,
		CustomerName,
		CustomerPhone,
		Items,
		TotalNumerator,
		TotalDenominator,
		Status,
		CreatedAt,
		UpdatedAt,
	}
}
