package domain

import (
	"time"

	"github.com/light-bringer/bijoux-service/internal/pkg/money"
)

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// ProductCreatedEvent is emitted when a product is created.
type ProductCreatedEvent struct {
	ProductID   string
	Name        string
	Description string
	Category    string
	Price       *money.Money
	Stock       int64
	Status      string
	CreatedAt   time.Time
}

func (e *ProductCreatedEvent) EventType() string {
	return "product.created"
}

func (e *ProductCreatedEvent) AggregateID() string {
	return e.ProductID
}

// ProductUpdatedEvent is emitted when product details are updated.
type ProductUpdatedEvent struct {
	ProductID string
	Name      string
	Category  string
	UpdatedAt time.Time
}

func (e *ProductUpdatedEvent) EventType() string {
	return "product.updated"
}

func (e *ProductUpdatedEvent) AggregateID() string {
	return e.ProductID
}

// StockChangedEvent is emitted when a product's stock level is set.
type StockChangedEvent struct {
	ProductID string
	OldStock  int64
	NewStock  int64
	ChangedAt time.Time
}

func (e *StockChangedEvent) EventType() string {
	return "product.stock.changed"
}

func (e *StockChangedEvent) AggregateID() string {
	return e.ProductID
}

// ProductActivatedEvent is emitted when a product is made visible in the
// storefront.
type ProductActivatedEvent struct {
	ProductID string
	Timestamp time.Time
}

func (e *ProductActivatedEvent) EventType() string {
	return "product.activated"
}

func (e *ProductActivatedEvent) AggregateID() string {
	return e.ProductID
}

// ProductDeactivatedEvent is emitted when a product is hidden from the
// storefront.
type ProductDeactivatedEvent struct {
	ProductID string
	Timestamp time.Time
}

func (e *ProductDeactivatedEvent) EventType() string {
	return "product.deactivated"
}

func (e *ProductDeactivatedEvent) AggregateID() string {
	return e.ProductID
}

// ProductArchivedEvent is emitted when a product is archived (soft deleted).
type ProductArchivedEvent struct {
	ProductID  string
	ArchivedAt time.Time
}

func (e *ProductArchivedEvent) EventType() string {
	return "product.archived"
}

func (e *ProductArchivedEvent) AggregateID() string {
	return e.ProductID
}
