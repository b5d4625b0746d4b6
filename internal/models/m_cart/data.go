package m_cart

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the carts table.
// Snapshot holds the serialized line items for one session as a JSON
// document; the cart is always written whole, never as a delta.
type Data struct {
	SessionID string           `spanner:"session_id"`
	Snapshot  spanner.NullJSON `spanner:"snapshot"`
	UpdatedAt time.Time        `spanner:"updated_at"`
}

// Columns lists every column of the carts table, in schema order.
func Columns() []string {
	return []string{
		SessionID,
		Snapshot,
		UpdatedAt,
	}
}
