package delete_order

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/light-bringer/bijoux-service/internal/app/order/contracts"
	"github.com/light-bringer/bijoux-service/internal/app/order/domain"
	"github.com/light-bringer/bijoux-service/internal/pkg/clock"
	"github.com/light-bringer/bijoux-service/internal/pkg/committer"
)

// Request contains the order to delete.
type Request struct {
	OrderID string
}

// Interactor handles the delete order use case. Deletion is hard; the
// back-office removes orders outright rather than cancelling them.
type Interactor struct {
	repo       contracts.OrderRepository
	outboxRepo contracts.OutboxRepository
	committer  *committer.Committer
	clock      clock.Clock
}

// NewInteractor creates a new delete order interactor.
func NewInteractor(
	repo contracts.OrderRepository,
	outboxRepo contracts.OutboxRepository,
	committer *committer.Committer,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		repo:       repo,
		outboxRepo: outboxRepo,
		committer:  committer,
		clock:      clock,
	}
}

// Execute removes an order.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	// 1. Load aggregate, if only to confirm it exists
	order, err := i.repo.GetByID(ctx, req.OrderID)
	if err != nil {
		return err
	}

	// Clear events on function exit to prevent duplicates on retry
	defer order.ClearEvents()

	order.MarkDeleted(i.clock.Now())

	// 2. Create commit plan
	plan := committer.NewPlan()
	plan.Add(i.repo.DeleteMut(order.ID()))

	for _, event := range order.DomainEvents() {
		payload, err := serializeEvent(event)
		if err != nil {
			return fmt.Errorf("failed to serialize event: %w", err)
		}
		outboxEvent := i.outboxRepo.EnrichEvent(event, payload)
		plan.Add(i.outboxRepo.InsertMut(outboxEvent))
	}

	if err := i.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// serializeEvent converts a domain event to JSON payload.
func serializeEvent(event domain.DomainEvent) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
