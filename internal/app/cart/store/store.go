package store

import (
	"context"

	"github.com/light-bringer/bijoux-service/internal/app/cart/domain"
)

// Store persists cart snapshots per session. The full state is written
// on every save; there are no partial updates.
type Store interface {
	// Load returns the session's cart. Absent or unreadable snapshots
	// load as the empty state, never an error.
	Load(ctx context.Context, sessionID string) (domain.State, error)

	// Save replaces the session's cart snapshot
	Save(ctx context.Context, sessionID string, state domain.State) error

	// Delete removes the session's cart
	Delete(ctx context.Context, sessionID string) error
}
