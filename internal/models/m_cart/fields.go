package m_cart

// Field name constants for the carts table.
const (
	TableName = "carts"

	SessionID = "session_id"
	Snapshot  = "snapshot"
	UpdatedAt = "updated_at"
)
