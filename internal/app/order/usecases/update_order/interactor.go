package update_order

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/light-bringer/bijoux-service/internal/app/order/contracts"
	"github.com/light-bringer/bijoux-service/internal/app/order/domain"
	"github.com/light-bringer/bijoux-service/internal/pkg/clock"
	"github.com/light-bringer/bijoux-service/internal/pkg/committer"
)

// Request contains the data to update an order.
// Nil pointer fields mean no change. Status may be set to any valid
// value; there is no transition graph.
type Request struct {
	OrderID       string
	CustomerName  *string
	CustomerPhone *string
	Items         []domain.OrderItem
	Status        *domain.OrderStatus
}

// Interactor handles the update order use case.
type Interactor struct {
	repo       contracts.OrderRepository
	outboxRepo contracts.OutboxRepository
	committer  *committer.Committer
	clock      clock.Clock
}

// NewInteractor creates a new update order interactor.
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

// Execute updates an order.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	// 1. Load aggregate
	order, err := i.repo.GetByID(ctx, req.OrderID)
	if err != nil {
		return err
	}

	// Clear events on function exit to prevent duplicates on retry
	defer order.ClearEvents()

	// 2. Call domain methods
	hasChanges := false

	if req.CustomerName != nil {
		if err := order.SetCustomerName(*req.CustomerName); err != nil {
			return err
		}
		hasChanges = true
	}

	if req.CustomerPhone != nil {
		if err := order.SetCustomerPhone(*req.CustomerPhone); err != nil {
			return err
		}
		hasChanges = true
	}

	if req.Items != nil {
		if err := order.SetItems(req.Items); err != nil {
			return err
		}
		hasChanges = true
	}

	if req.Status != nil {
		if err := order.SetStatus(*req.Status); err != nil {
			return err
		}
		hasChanges = true
	}

	// Emit a single OrderUpdatedEvent for all changes
	if hasChanges {
		order.MarkUpdated(i.clock.Now())
	}

	// 3. Create commit plan
	plan := committer.NewPlan()

	if mut := i.repo.UpdateMut(order); mut != nil {
		plan.Add(mut)
	}

	for _, event := range order.DomainEvents() {
		payload, err := serializeEvent(event)
		if err != nil {
			return fmt.Errorf("failed to serialize event: %w", err)
		}
		outboxEvent := i.outboxRepo.EnrichEvent(event, payload)
		plan.Add(i.outboxRepo.InsertMut(outboxEvent))
	}

	if plan.IsEmpty() {
		return nil // No changes
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
