package domain

import (
	"strings"
	"time"

	"github.com/light-bringer/bijoux-service/internal/pkg/clock"
	"github.com/light-bringer/bijoux-service/internal/pkg/money"
)

// Field name constants for change tracking.
const (
	FieldCustomerName  = "customer_name"
	FieldCustomerPhone = "customer_phone"
	FieldItems         = "items"
	FieldStatus        = "status"
)

// OrderStatus represents the fulfilment state of an order. There is no
// transition graph; the back-office sets any status directly.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPaid      OrderStatus = "paid"
	StatusShipped   OrderStatus = "shipped"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// RevenueStatuses are the statuses that count as realized revenue.
var RevenueStatuses = []OrderStatus{StatusPaid, StatusShipped, StatusCompleted}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// OrderItem is one product line recorded on an order. Values are
// copied from the cart at order time.
type OrderItem struct {
	ProductID string       `json:"product_id"`
	Name      string       `json:"name"`
	Quantity  int64        `json:"quantity"`
	UnitPrice *money.Money `json:"unit_price"`
}

// Order is the order aggregate root.
type Order struct {
	id            string
	customerName  string
	customerPhone string
	items         []OrderItem
	total         *money.Money
	status        OrderStatus
	createdAt     time.Time
	updatedAt     time.Time

	changes *ChangeTracker
	events  []DomainEvent
	clock   clock.Clock
}

// NewOrder creates a new pending order. The total is computed from the
// items, not supplied by the caller.
func NewOrder(id, customerName, customerPhone string, items []OrderItem, now time.Time, clk clock.Clock) (*Order, error) {
	if strings.TrimSpace(customerName) == "" {
		return nil, ErrEmptyCustomerName
	}
	if strings.TrimSpace(customerPhone) == "" {
		return nil, ErrEmptyCustomerPhone
	}
	if err := validateItems(items); err != nil {
		return nil, err
	}

	order := &Order{
		id:            id,
		customerName:  customerName,
		customerPhone: customerPhone,
		items:         copyItems(items),
		total:         itemsTotal(items),
		status:        StatusPending,
		createdAt:     now,
		updatedAt:     now,
		changes:       NewChangeTracker(),
		clock:         clk,
	}

	order.recordEvent(&OrderCreatedEvent{
		OrderID:      order.id,
		CustomerName: order.customerName,
		Total:        order.total.String(),
		Status:       string(order.status),
		CreatedAt:    now,
	})

	return order, nil
}

// ReconstructOrder rebuilds an order from persistence without
// validation or events.
func ReconstructOrder(
	id, customerName, customerPhone string,
	items []OrderItem,
	total *money.Money,
	status OrderStatus,
	createdAt, updatedAt time.Time,
	clk clock.Clock,
) *Order {
	return &Order{
		id:            id,
		customerName:  customerName,
		customerPhone: customerPhone,
		items:         items,
		total:         total,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		changes:       NewChangeTracker(),
		clock:         clk,
	}
}

// Getters
func (o *Order) ID() string              { return o.id }
func (o *Order) CustomerName() string    { return o.customerName }
func (o *Order) CustomerPhone() string   { return o.customerPhone }
func (o *Order) Items() []OrderItem      { return copyItems(o.items) }
func (o *Order) Total() *money.Money     { return o.total.Copy() }
func (o *Order) Status() OrderStatus     { return o.status }
func (o *Order) CreatedAt() time.Time    { return o.createdAt }
func (o *Order) UpdatedAt() time.Time    { return o.updatedAt }
func (o *Order) Changes() *ChangeTracker { return o.changes }

// DomainEvents returns the events recorded since load.
func (o *Order) DomainEvents() []DomainEvent { return o.events }

// SetCustomerName updates the customer name.
func (o *Order) SetCustomerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyCustomerName
	}
	if o.customerName == name {
		return nil
	}
	o.customerName = name
	o.changes.MarkDirty(FieldCustomerName)
	return nil
}

// SetCustomerPhone updates the customer phone number.
func (o *Order) SetCustomerPhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return ErrEmptyCustomerPhone
	}
	if o.customerPhone == phone {
		return nil
	}
	o.customerPhone = phone
	o.changes.MarkDirty(FieldCustomerPhone)
	return nil
}

// SetItems replaces the order lines and recomputes the total.
func (o *Order) SetItems(items []OrderItem) error {
	if err := validateItems(items); err != nil {
		return err
	}
	o.items = copyItems(items)
	o.total = itemsTotal(items)
	o.changes.MarkDirty(FieldItems)
	return nil
}

// SetStatus moves the order to any valid status. A same-status set is
// a no-op.
func (o *Order) SetStatus(status OrderStatus) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}
	if o.status == status {
		return nil
	}

	oldStatus := o.status
	o.status = status
	o.changes.MarkDirty(FieldStatus)

	o.recordEvent(&OrderStatusChangedEvent{
		OrderID:   o.id,
		OldStatus: string(oldStatus),
		NewStatus: string(status),
		ChangedAt: o.clock.Now(),
	})

	return nil
}

// CountsAsRevenue reports whether the order's status counts toward
// revenue totals.
func (o *Order) CountsAsRevenue() bool {
	for _, s := range RevenueStatuses {
		if o.status == s {
			return true
		}
	}
	return false
}

// MarkUpdated emits a single OrderUpdatedEvent covering a batch of
// field-level edits. Usecases call it once after applying setters.
func (o *Order) MarkUpdated(now time.Time) {
	o.recordEvent(&OrderUpdatedEvent{
		OrderID:   o.id,
		Status:    string(o.status),
		UpdatedAt: now,
	})
}

// MarkDeleted emits the deletion event. Called by the delete usecase
// before the row is removed.
func (o *Order) MarkDeleted(now time.Time) {
	o.recordEvent(&OrderDeletedEvent{
		OrderID:   o.id,
		DeletedAt: now,
	})
}

// ClearEvents clears the recorded domain events.
func (o *Order) ClearEvents() {
	o.events = nil
}

func (o *Order) recordEvent(event DomainEvent) {
	o.events = append(o.events, event)
}

func validateItems(items []OrderItem) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return ErrInvalidQuantity
		}
		if item.UnitPrice == nil || !item.UnitPrice.IsPositive() {
			return ErrInvalidItemPrice
		}
	}
	return nil
}

func copyItems(items []OrderItem) []OrderItem {
	out := make([]OrderItem, len(items))
	copy(out, items)
	return out
}

func itemsTotal(items []OrderItem) *money.Money {
	total := money.Zero()
	for _, item := range items {
		total = total.Add(item.UnitPrice.MultiplyInt(item.Quantity))
	}
	return total
}
