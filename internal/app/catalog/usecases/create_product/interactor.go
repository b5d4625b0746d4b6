package create_product

import (
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/google/uuid"

	"github.com/light-bringer/bijoux-service/internal/app/catalog/contracts"
	"github.com/light-bringer/bijoux-service/internal/app/catalog/domain"
	"github.com/light-bringer/bijoux-service/internal/pkg/clock"
	"github.com/light-bringer/bijoux-service/internal/pkg/committer"
	"github.com/light-bringer/bijoux-service/internal/pkg/money"
)

// Request contains the data needed to create a product.
type Request struct {
	Name            string
	Description     string
	Category        string
	Price           *money.Money
	Stock           int64
	DiscountPercent int64
	IsNew           bool
	IsBestSeller    bool
	MainImage       *contracts.ImageUpload
	HoverImage      *contracts.ImageUpload
}

// Interactor handles the create product use case.
type Interactor struct {
	repo       contracts.ProductRepository
	outboxRepo contracts.OutboxRepository
	images     contracts.ImageStore
	committer  *committer.Committer
	clock      clock.Clock
}

// NewInteractor creates a new create product interactor.
func NewInteractor(
	repo contracts.ProductRepository,
	outboxRepo contracts.OutboxRepository,
	images contracts.ImageStore,
	committer *committer.Committer,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		repo:       repo,
		outboxRepo: outboxRepo,
		images:     images,
		committer:  committer,
		clock:      clock,
	}
}

// Execute creates a new product. Images are uploaded before the commit;
// if the commit fails the uploaded objects are left orphaned, matching
// the back-office's best-effort approach to storage cleanup.
func (i *Interactor) Execute(ctx context.Context, req *Request) (string, error) {
	// 1. Validate request
	if err := i.validate(req); err != nil {
		return "", err
	}

	productID := uuid.New().String()
	now := i.clock.Now()

	// 2. Upload images first so the aggregate stores final URLs
	mainURL, err := i.upload(ctx, productID, "main", req.MainImage)
	if err != nil {
		return "", fmt.Errorf("failed to upload main image: %w", err)
	}

	hoverURL := ""
	if req.HoverImage != nil {
		hoverURL, err = i.upload(ctx, productID, "hover", req.HoverImage)
		if err != nil {
			return "", fmt.Errorf("failed to upload hover image: %w", err)
		}
	}

	// 3. Create domain aggregate
	product, err := domain.NewProduct(productID, req.Name, req.Description, req.Category, req.Price, req.Stock, now, i.clock)
	if err != nil {
		return "", fmt.Errorf("failed to create product: %w", err)
	}

	if err := product.SetImages(mainURL, hoverURL); err != nil {
		return "", err
	}

	if req.DiscountPercent != 0 {
		if err := product.SetDiscountPercent(req.DiscountPercent); err != nil {
			return "", err
		}
	}

	if req.IsNew || req.IsBestSeller {
		if err := product.SetFlags(req.IsNew, req.IsBestSeller); err != nil {
			return "", err
		}
	}

	// 4. Create commit plan
	plan := committer.NewPlan()
	plan.Add(i.repo.InsertMut(product))

	// 5. Add outbox events
	for _, event := range product.DomainEvents() {
		payload, err := serializeEvent(event)
		if err != nil {
			return "", fmt.Errorf("failed to serialize event: %w", err)
		}
		outboxEvent := i.outboxRepo.EnrichEvent(event, payload)
		plan.Add(i.outboxRepo.InsertMut(outboxEvent))
	}

	// 6. Apply plan (usecase applies, not handler)
	if err := i.committer.Apply(ctx, plan); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	return product.ID(), nil
}

// validate validates the request.
func (i *Interactor) validate(req *Request) error {
	if req.Name == "" {
		return domain.ErrEmptyName
	}
	if req.Description == "" {
		return domain.ErrEmptyDescription
	}
	if req.Category == "" {
		return domain.ErrInvalidCategory
	}
	if req.Price == nil || req.Price.IsNegative() || req.Price.IsZero() {
		return domain.ErrPriceNotPositive
	}
	if req.Price.GreaterThan(domain.MaxPrice) {
		return domain.ErrPriceExceedsMax
	}
	if req.Stock < 0 {
		return domain.ErrNegativeStock
	}
	if req.DiscountPercent < 0 || req.DiscountPercent > 100 {
		return domain.ErrInvalidDiscountPercent
	}
	if req.MainImage == nil {
		return domain.ErrMissingMainImage
	}
	return nil
}

// upload stores one image and returns its public URL.
// Object names follow products/{productID}_{kind}_{unixMillis}{ext}.
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
