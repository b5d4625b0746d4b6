package domain

import "time"

// DomainEvent is the interface all order domain events implement.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// OrderCreatedEvent is emitted when a new order is recorded.
type OrderCreatedEvent struct {
	OrderID      string    `json:"order_id"`
	CustomerName string    `json:"customer_name"`
	Total        string    `json:"total"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func (e *OrderCreatedEvent) EventType() string   { return "order.created" }
func (e *OrderCreatedEvent) AggregateID() string { return e.OrderID }

// OrderUpdatedEvent is emitted once per batch of field-level edits.
type OrderUpdatedEvent struct {
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *OrderUpdatedEvent) EventType() string   { return "order.updated" }
func (e *OrderUpdatedEvent) AggregateID() string { return e.OrderID }

// OrderStatusChangedEvent is emitted when the status field changes.
type OrderStatusChangedEvent struct {
	OrderID   string    `json:"order_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedAt time.Time `json:"changed_at"`
}

func (e *OrderStatusChangedEvent) EventType() string   { return "order.status.changed" }
func (e *OrderStatusChangedEvent) AggregateID() string { return e.OrderID }

// OrderDeletedEvent is emitted when an order is removed.
type OrderDeletedEvent struct {
	OrderID   string    `json:"order_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

func (e *OrderDeletedEvent) EventType() string   { return "order.deleted" }
func (e *OrderDeletedEvent) AggregateID() string { return e.OrderID }
