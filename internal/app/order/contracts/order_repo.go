package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/bijoux-service/internal/app/order/domain"
)

// OrderRepository defines the interface for order aggregate persistence.
// Mutation methods return Spanner mutations without applying them;
// usecases collect mutations into a commit plan.
type OrderRepository interface {
	// InsertMut creates a mutation for inserting a new order
	InsertMut(order *domain.Order) *spanner.Mutation

	// UpdateMut creates a mutation for updating an order (only dirty fields)
	UpdateMut(order *domain.Order) *spanner.Mutation

	// DeleteMut creates a mutation for removing an order
	DeleteMut(orderID string) *spanner.Mutation

	// GetByID retrieves an order by ID
	GetByID(ctx context.Context, orderID string) (*domain.Order, error)
}
