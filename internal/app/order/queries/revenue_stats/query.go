package revenue_stats

import (
	"context"
	"time"

	"github.com/light-bringer/bijoux-service/internal/app/order/contracts"
	"github.com/light-bringer/bijoux-service/internal/pkg/clock"
)

// Query handles the revenue stats query use case.
type Query struct {
	readModel contracts.ReadModel
	clock     clock.Clock
}

// NewQuery creates a new revenue stats query.
func NewQuery(readModel contracts.ReadModel, clk clock.Clock) *Query {
	return &Query{
		readModel: readModel,
		clock:     clk,
	}
}

// Execute aggregates revenue statistics over all orders. Monthly
// revenue covers orders created since the first of the current month.
func (q *Query) Execute(ctx context.Context) (*contracts.RevenueStats, error) {
	return q.readModel.RevenueStats(ctx, startOfMonth(q.clock.Now()))
}

func startOfMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
