package update_product

import (
	"context"
	"encoding/json"
	"fmt"
	"path"

	"go.uber.org/zap"

	"github.com/light-bringer/bijoux-service/internal/app/catalog/contracts"
	"github.com/light-bringer/bijoux-service/internal/app/catalog/domain"
	"github.com/light-bringer/bijoux-service/internal/pkg/clock"
	"github.com/light-bringer/bijoux-service/internal/pkg/committer"
	"github.com/light-bringer/bijoux-service/internal/pkg/money"
)

// Request contains the data to update a product.
// Nil pointer fields mean no change.
type Request struct {
	ProductID       string
	Name            *string
	Description     *string
	Category        *string
	Price           *money.Money
	DiscountPercent *int64
	IsNew           *bool
	IsBestSeller    *bool
	MainImage       *contracts.ImageUpload
	HoverImage      *contracts.ImageUpload
}

// Interactor handles the update product use case.
type Interactor struct {
	repo       contracts.ProductRepository
	outboxRepo contracts.OutboxRepository
	images     contracts.ImageStore
	committer  *committer.Committer
	clock      clock.Clock
	logger     *zap.Logger
}

// NewInteractor creates a new update product interactor.
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

// Execute updates a product. Replaced images are uploaded before the
// commit and the previous objects deleted best-effort afterwards.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	// 1. Load aggregate
	product, err := i.repo.GetByID(ctx, req.ProductID)
	if err != nil {
		return err
	}

	// Clear events on function exit to prevent duplicates on retry
	defer product.ClearEvents()

	// 2. Call domain methods
	hasChanges := false

	if req.Name != nil {
		if err := product.SetName(*req.Name); err != nil {
			return err
		}
		hasChanges = true
	}

	if req.Description != nil {
		if err := product.SetDescription(*req.Description); err != nil {
			return err
		}
		hasChanges = true
	}

	if req.Category != nil {
		if err := product.SetCategory(*req.Category); err != nil {
			return err
		}
		hasChanges = true
	}

	if req.Price != nil {
		if err := product.SetPrice(req.Price); err != nil {
			return err
		}
		hasChanges = true
	}

	if req.DiscountPercent != nil {
		if err := product.SetDiscountPercent(*req.DiscountPercent); err != nil {
			return err
		}
		hasChanges = true
	}

	if req.IsNew != nil || req.IsBestSeller != nil {
		isNew := product.IsNew()
		if req.IsNew != nil {
			isNew = *req.IsNew
		}
		isBestSeller := product.IsBestSeller()
		if req.IsBestSeller != nil {
			isBestSeller = *req.IsBestSeller
		}
		if err := product.SetFlags(isNew, isBestSeller); err != nil {
			return err
		}
		hasChanges = true
	}

	var replacedURLs []string
	if req.MainImage != nil || req.HoverImage != nil {
		mainURL := product.ImageURL()
		hoverURL := product.HoverImageURL()

		if req.MainImage != nil {
			if mainURL != "" {
				replacedURLs = append(replacedURLs, mainURL)
			}
			mainURL, err = i.upload(ctx, product.ID(), "main", req.MainImage)
			if err != nil {
				return fmt.Errorf("failed to upload main image: %w", err)
			}
		}

		if req.HoverImage != nil {
			if hoverURL != "" {
				replacedURLs = append(replacedURLs, hoverURL)
			}
			hoverURL, err = i.upload(ctx, product.ID(), "hover", req.HoverImage)
			if err != nil {
				return fmt.Errorf("failed to upload hover image: %w", err)
			}
		}

		if err := product.SetImages(mainURL, hoverURL); err != nil {
			return err
		}
		hasChanges = true
	}

	// Emit a single ProductUpdatedEvent for all changes
	if hasChanges {
		product.MarkUpdated(i.clock.Now())
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

	if plan.IsEmpty() {
		return nil // No changes
	}

	if err := i.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	// 4. Delete replaced objects best-effort; the commit already succeeded
	for _, url := range replacedURLs {
		if err := i.images.Delete(ctx, url); err != nil {
			i.logger.Warn("failed to delete replaced product image",
				zap.String("product_id", product.ID()),
				zap.String("url", url),
				zap.Error(err))
		}
	}

	return nil
}

func (i *Interactor) upload(ctx context.Context, productID, kind string, img *contracts.ImageUpload) (string, error) {
	ext := path.Ext(img.Filename)
	objectName := fmt.Sprintf("products/%s_%s_%d%s", productID, kind, i.clock.Now().UnixMilli(), ext)
	return i.images.Upload(ctx, objectName, img.ContentType, img.Content)
}

// serializeEvent converts a domain event to JSON payload.
func serializeEvent(event domain.DomainEvent) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
