package catalog_stats

import (
	"context"

	"github.com/light-bringer/bijoux-service/internal/app/catalog/contracts"
)

// Query handles the catalog stats query use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new catalog stats query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute aggregates dashboard statistics over the non-archived catalog.
func (q *Query) Execute(ctx context.Context) (*contracts.CatalogStats, error) {
	return q.readModel.CatalogStats(ctx)
}
