package archive_product

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/light-bringer/bijoux-service/internal/app/catalog/contracts"
	"github.com/light-bringer/bijoux-service/internal/app/catalog/domain"
	"github.com/light-bringer/bijoux-service/internal/pkg/clock"
	"github.com/light-bringer/bijoux-service/internal/pkg/committer"
)

// Request contains the data to archive a product.
type Request struct {
	ProductID string
}

// Interactor handles the archive product use case. Archiving is a soft
// delete: the row stays for order history, the images are removed.
type Interactor struct {
	repo       contracts.ProductRepository
	outboxRepo contracts.OutboxRepository
	images     contracts.ImageStore
	committer  *committer.Committer
	clock      clock.Clock
	logger     *zap.Logger
}

// NewInteractor creates a new archive product interactor.
func NewInteractor(
	repo contracts.ProductRepository,
	outboxRepo contracts.OutboxRepository,
	images contracts.ImageStore,
	committer *committer.Committer,
	clock clock.Clock,
	logger *zap.Logger,
) *Interactor {
	return &Interactor{
		repo:       repo,
		outboxRepo: outboxRepo,
		images:     images,
		committer:  committer,
		clock:      clock,
		logger:     logger,
	}
}

// Execute archives a product.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	// 1. Load aggregate
	product, err := i.repo.GetByID(ctx, req.ProductID)
	if err != nil {
		return err
	}

	// Clear events on function exit to prevent duplicates on retry
	defer product.ClearEvents()

	// 2. Call domain method
	if err := product.Archive(i.clock.Now()); err != nil {
		return err
	}

	// 3. Create commit plan
	plan := committer.NewPlan()

	if mut := i.repo.UpdateMut(product); mut != nil {
		plan.Add(mut)
	}

	for _, event := range product.DomainEvents() {
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

	// 4. Remove stored images best-effort; the archive already committed
	for _, url := range []string{product.ImageURL(), product.HoverImageURL()} {
		if url == "" {
			continue
		}
		if err := i.images.Delete(ctx, url); err != nil {
			i.logger.Warn("failed to delete archived product image",
				zap.String("product_id", product.ID()),
				zap.String("url", url),
				zap.Error(err))
		}
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
