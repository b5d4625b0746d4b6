package create_order

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/light-bringer/bijoux-service/internal/app/order/contracts"
	"github.com/light-bringer/bijoux-service/internal/app/order/domain"
	"github.com/light-bringer/bijoux-service/internal/pkg/clock"
	"github.com/light-bringer/bijoux-service/internal/pkg/committer"
)

// Request contains the data needed to record an order.
type Request struct {
	CustomerName  string
	CustomerPhone string
	Items         []domain.OrderItem
}

// Interactor handles the create order use case.
type Interactor struct {
	repo       contracts.OrderRepository
	outboxRepo contracts.OutboxRepository
	committer  *committer.Committer
	clock      clock.Clock
}

// NewInteractor creates a new create order interactor.
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

// Execute records a new pending order and returns its ID.
func (i *Interactor) Execute(ctx context.Context, req *Request) (string, error) {
	orderID := uuid.New().String()

	// 1. Create domain aggregate
	order, err := domain.NewOrder(orderID, req.CustomerName, req.CustomerPhone, req.Items, i.clock.Now(), i.clock)
	if err != nil {
		return "", err
	}

	// 2. Create commit plan
	plan := committer.NewPlan()
	plan.Add(i.repo.InsertMut(order))

	// 3. Add outbox events
	for _, event := range order.DomainEvents() {
		payload, err := serializeEvent(event)
		if err != nil {
			return "", fmt.Errorf("failed to serialize event: %w", err)
		}
		outboxEvent := i.outboxRepo.EnrichEvent(event, payload)
		plan.Add(i.outboxRepo.InsertMut(outboxEvent))
	}

	// 4. Apply plan
	if err := i.committer.Apply(ctx, plan); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	return orderID, nil
}

// serializeEvent converts a domain event to JSON payload.
func serializeEvent(event domain.DomainEvent) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
