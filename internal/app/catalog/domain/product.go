package domain

import (
	"math/big"
	"time"

	"github.com/light-bringer/bijoux-service/internal/pkg/clock"
	"github.com/light-bringer/bijoux-service/internal/pkg/money"
)

// Field names for change tracking
const (
	FieldName         = "name"
	FieldDescription  = "description"
	FieldCategory     = "category"
	FieldPrice        = "price"
	FieldStock        = "stock"
	FieldDiscount     = "discount"
	FieldIsNew        = "is_new"
	FieldIsBestSeller = "is_best_seller"
	FieldImages       = "images"
	FieldStatus       = "status"
	FieldArchivedAt   = "archived_at"
)

// ProductStatus represents the lifecycle status of a product.
type ProductStatus string

const (
	StatusActive   ProductStatus = "active"
	StatusInactive ProductStatus = "inactive"
	StatusArchived ProductStatus = "archived"
)

// MaxPrice is the upper bound the back-office imposes on product prices.
var MaxPrice = money.MustParse("30")

// LowStockThreshold is the fixed stock level below which a product counts
// as low stock on the dashboard.
const LowStockThreshold = 5

// Product is the aggregate root for catalogue management.
// It encapsulates pricing, stock, discount, and storefront visibility.
type Product struct {
	id              string
	name            string
	description     string
	category        string
	price           *money.Money
	stock           int64
	discountPercent int64
	isNew           bool
	isBestSeller    bool
	imageURL        string
	hoverImageURL   string
	status          ProductStatus
	createdAt       time.Time
	updatedAt       time.Time
	archivedAt      *time.Time

	// Clock for time operations (injected for testability)
	clock clock.Clock

	// Change tracking for optimized repository updates
	changes *ChangeTracker

	// Domain events to be published
	events []DomainEvent
}

// NewProduct creates a new Product aggregate (for creation).
// New products are active immediately, matching the back-office flow where
// a created product appears in the storefront.
func NewProduct(id, name, description, category string, price *money.Money, stock int64, now time.Time, clk clock.Clock) (*Product, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	if description == "" {
		return nil, ErrEmptyDescription
	}

	if category == "" {
		return nil, ErrInvalidCategory
	}

	if price == nil || price.IsNegative() || price.IsZero() {
		return nil, ErrPriceNotPositive
	}

	if price.GreaterThan(MaxPrice) {
		return nil, ErrPriceExceedsMax
	}

	if stock < 0 {
		return nil, ErrNegativeStock
	}

	p := &Product{
		id:          id,
		name:        name,
		description: description,
		category:    category,
		price:       price.Copy(),
		stock:       stock,
		status:      StatusActive,
		createdAt:   now,
		updatedAt:   now,
		clock:       clk,
		changes:     NewChangeTracker(),
		events:      make([]DomainEvent, 0),
	}

	// Mark all fields as dirty for new product
	p.changes.MarkDirty(FieldName)
	p.changes.MarkDirty(FieldDescription)
	p.changes.MarkDirty(FieldCategory)
	p.changes.MarkDirty(FieldPrice)
	p.changes.MarkDirty(FieldStock)
	p.changes.MarkDirty(FieldStatus)

	p.recordEvent(&ProductCreatedEvent{
		ProductID:   p.id,
		Name:        p.name,
		Description: p.description,
		Category:    p.category,
		Price:       p.price.Copy(),
		Stock:       p.stock,
		Status:      string(p.status),
		CreatedAt:   p.createdAt,
	})

	return p, nil
}

// ReconstructProduct reconstitutes a Product from the database.
func ReconstructProduct(
	id, name, description, category string,
	price *money.Money,
	stock, discountPercent int64,
	isNew, isBestSeller bool,
	imageURL, hoverImageURL string,
	status ProductStatus,
	createdAt, updatedAt time.Time,
	archivedAt *time.Time,
	clk clock.Clock,
) *Product {
	return &Product{
		id:              id,
		name:            name,
		description:     description,
		category:        category,
		price:           price,
		stock:           stock,
		discountPercent: discountPercent,
		isNew:           isNew,
		isBestSeller:    isBestSeller,
		imageURL:        imageURL,
		hoverImageURL:   hoverImageURL,
		status:          status,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		archivedAt:      archivedAt,
		clock:           clk,
		changes:         NewChangeTracker(), // Start with clean slate
		events:          make([]DomainEvent, 0),
	}
}

// Getters
func (p *Product) ID() string              { return p.id }
func (p *Product) Name() string            { return p.name }
func (p *Product) Description() string     { return p.description }
func (p *Product) Category() string        { return p.category }
func (p *Product) Price() *money.Money     { return p.price.Copy() }
func (p *Product) Stock() int64            { return p.stock }
func (p *Product) DiscountPercent() int64  { return p.discountPercent }
func (p *Product) IsNew() bool             { return p.isNew }
func (p *Product) IsBestSeller() bool      { return p.isBestSeller }
func (p *Product) ImageURL() string        { return p.imageURL }
func (p *Product) HoverImageURL() string   { return p.hoverImageURL }
func (p *Product) Status() ProductStatus   { return p.status }
func (p *Product) CreatedAt() time.Time    { return p.createdAt }
func (p *Product) UpdatedAt() time.Time    { return p.updatedAt }
func (p *Product) ArchivedAt() *time.Time  { return p.archivedAt }
func (p *Product) Changes() *ChangeTracker { return p.changes }

func (p *Product) DomainEvents() []DomainEvent { return p.events }

// SetName updates the product name.
func (p *Product) SetName(name string) error {
	if err := p.checkNotArchived(); err != nil {
		return err
	}

	if name == "" {
		return ErrEmptyName
	}

	p.name = name
	p.changes.MarkDirty(FieldName)
	return nil
}

// SetDescription updates the product description.
func (p *Product) SetDescription(description string) error {
	if err := p.checkNotArchived(); err != nil {
		return err
	}

	if description == "" {
		return ErrEmptyDescription
	}

	p.description = description
	p.changes.MarkDirty(FieldDescription)
	return nil
}

// SetCategory updates the product category.
func (p *Product) SetCategory(category string) error {
	if err := p.checkNotArchived(); err != nil {
		return err
	}

	if category == "" {
		return ErrInvalidCategory
	}

	p.category = category
	p.changes.MarkDirty(FieldCategory)
	return nil
}

// SetPrice updates the product price, enforcing the back-office bounds.
func (p *Product) SetPrice(price *money.Money) error {
	if err := p.checkNotArchived(); err != nil {
		return err
	}

	if price == nil || price.IsNegative() || price.IsZero() {
		return ErrPriceNotPositive
	}

	if price.GreaterThan(MaxPrice) {
		return ErrPriceExceedsMax
	}

	p.price = price.Copy()
	p.changes.MarkDirty(FieldPrice)
	return nil
}

// SetStock replaces the stock level.
func (p *Product) SetStock(stock int64) error {
	if err := p.checkNotArchived(); err != nil {
		return err
	}

	if stock < 0 {
		return ErrNegativeStock
	}

	old := p.stock
	p.stock = stock
	p.changes.MarkDirty(FieldStock)

	p.recordEvent(&StockChangedEvent{
		ProductID: p.id,
		OldStock:  old,
		NewStock:  stock,
		ChangedAt: p.clock.Now(),
	})
	return nil
}

// SetDiscountPercent updates the flat discount percentage (0 disables it).
func (p *Product) SetDiscountPercent(percent int64) error {
	if err := p.checkNotArchived(); err != nil {
		return err
	}

	if percent < 0 || percent > 100 {
		return ErrInvalidDiscountPercent
	}

	p.discountPercent = percent
	p.changes.MarkDirty(FieldDiscount)
	return nil
}

// SetFlags updates the storefront badges.
func (p *Product) SetFlags(isNew, isBestSeller bool) error {
	if err := p.checkNotArchived(); err != nil {
		return err
	}

	p.isNew = isNew
	p.isBestSeller = isBestSeller
	p.changes.MarkDirty(FieldIsNew)
	p.changes.MarkDirty(FieldIsBestSeller)
	return nil
}

// SetImages replaces the image references. The hover image may be empty.
func (p *Product) SetImages(imageURL, hoverImageURL string) error {
	if err := p.checkNotArchived(); err != nil {
		return err
	}

	if imageURL == "" {
		return ErrMissingMainImage
	}

	p.imageURL = imageURL
	p.hoverImageURL = hoverImageURL
	p.changes.MarkDirty(FieldImages)
	return nil
}

// Activate makes the product visible in the storefront.
func (p *Product) Activate(now time.Time) error {
	if err := p.checkNotArchived(); err != nil {
		return err
	}

	if p.status == StatusActive {
		return ErrAlreadyActive
	}

	p.status = StatusActive
	p.changes.MarkDirty(FieldStatus)

	p.recordEvent(&ProductActivatedEvent{ProductID: p.id, Timestamp: now})
	return nil
}

// Deactivate hides the product from the storefront.
func (p *Product) Deactivate(now time.Time) error {
	if err := p.checkNotArchived(); err != nil {
		return err
	}

	if p.status == StatusInactive {
		return ErrAlreadyInactive
	}

	p.status = StatusInactive
	p.changes.MarkDirty(FieldStatus)

	p.recordEvent(&ProductDeactivatedEvent{ProductID: p.id, Timestamp: now})
	return nil
}

// Archive archives the product (soft delete).
func (p *Product) Archive(now time.Time) error {
	if p.status == StatusArchived {
		return ErrAlreadyArchived
	}

	p.status = StatusArchived
	p.archivedAt = &now
	p.changes.MarkDirty(FieldStatus)
	p.changes.MarkDirty(FieldArchivedAt)

	p.recordEvent(&ProductArchivedEvent{ProductID: p.id, ArchivedAt: now})
	return nil
}

// EffectivePrice returns the price after the flat discount percentage.
func (p *Product) EffectivePrice() *money.Money {
	if p.discountPercent <= 0 {
		return p.price.Copy()
	}
	factor := big.NewRat(100-p.discountPercent, 100)
	return p.price.MultiplyByRat(factor)
}

// IsActive returns true if the product is visible in the storefront.
func (p *Product) IsActive() bool {
	return p.status == StatusActive
}

// IsArchived returns true if the product is archived.
func (p *Product) IsArchived() bool {
	return p.status == StatusArchived
}

// IsLowStock returns true if the stock level is below the fixed threshold.
func (p *Product) IsLowStock() bool {
	return p.stock < LowStockThreshold
}

// checkNotArchived returns an error if the product is archived.
func (p *Product) checkNotArchived() error {
	if p.status == StatusArchived {
		return ErrCannotModifyArchived
	}
	return nil
}

// MarkUpdated emits a single ProductUpdatedEvent covering a batch of
// field-level edits. Usecases call it once after applying setters.
func (p *Product) MarkUpdated(now time.Time) {
	p.recordEvent(&ProductUpdatedEvent{
		ProductID: p.id,
		Name:      p.name,
		Category:  p.category,
		UpdatedAt: now,
	})
}

// recordEvent adds a domain event to the list of events.
func (p *Product) recordEvent(event DomainEvent) {
	p.events = append(p.events, event)
}

// ClearEvents clears all recorded domain events (called after publishing).
func (p *Product) ClearEvents() {
	p.events = make([]DomainEvent, 0)
}
