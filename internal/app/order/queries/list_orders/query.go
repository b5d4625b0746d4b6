package list_orders

import (
	"context"

	"github.com/light-bringer/bijoux-service/internal/app/order/contracts"
)

// Request contains filtering and pagination parameters.
type Request struct {
	Status   string
	PageSize int
	Offset   int
}

// Query handles the list orders query use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new list orders query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves a paginated list of orders, newest first.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.ListResult, error) {
	filter := &contracts.ListFilter{
		Status:   req.Status,
		PageSize: req.PageSize,
		Offset:   req.Offset,
	}

	return q.readModel.ListOrders(ctx, filter)
}
