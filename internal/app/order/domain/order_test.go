package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/bijoux-service/internal/pkg/clock"
	"github.com/light-bringer/bijoux-service/internal/pkg/money"
)

var testNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func testItems() []OrderItem {
	return []OrderItem{
		{ProductID: "p1", Name: "Collier perle", Quantity: 2, UnitPrice: money.MustParse("10.00")},
		{ProductID: "p2", Name: "Bague argent", Quantity: 1, UnitPrice: money.MustParse("5.50")},
	}
}

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	order, err := NewOrder("order-1", "Marie Tremblay", "+15145551234", testItems(), testNow, clock.NewMockClock(testNow))
	require.NoError(t, err)
	order.ClearEvents()
	order.Changes().Clear()
	return order
}

func TestNewOrder(t *testing.T) {
	order, err := NewOrder("order-1", "Marie Tremblay", "+15145551234", testItems(), testNow, clock.NewMockClock(testNow))

	require.NoError(t, err)
	assert.Equal(t, "order-1", order.ID())
	assert.Equal(t, StatusPending, order.Status())
	assert.Equal(t, "25.50", order.Total().String())
	assert.Len(t, order.Items(), 2)

	events := order.DomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "order.created", events[0].EventType())
	assert.Equal(t, "order-1", events[0].AggregateID())
}

func TestNewOrder_Validation(t *testing.T) {
	clk := clock.NewMockClock(testNow)

	tests := []struct {
		name    string
		cust    string
		phone   string
		items   []OrderItem
		wantErr error
	}{
		{"empty customer name", "", "+15145551234", testItems(), ErrEmptyCustomerName},
		{"blank customer name", "   ", "+15145551234", testItems(), ErrEmptyCustomerName},
		{"empty phone", "Marie", "", testItems(), ErrEmptyCustomerPhone},
		{"no items", "Marie", "+15145551234", nil, ErrNoItems},
		{"zero quantity", "Marie", "+15145551234", []OrderItem{
			{ProductID: "p1", Name: "x", Quantity: 0, UnitPrice: money.MustParse("5.00")},
		}, ErrInvalidQuantity},
		{"missing price", "Marie", "+15145551234", []OrderItem{
			{ProductID: "p1", Name: "x", Quantity: 1},
		}, ErrInvalidItemPrice},
		{"zero price", "Marie", "+15145551234", []OrderItem{
			{ProductID: "p1", Name: "x", Quantity: 1, UnitPrice: money.Zero()},
		}, ErrInvalidItemPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOrder("order-1", tt.cust, tt.phone, tt.items, testNow, clk)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestOrder_SetStatus(t *testing.T) {
	order := newTestOrder(t)

	require.NoError(t, order.SetStatus(StatusPaid))

	assert.Equal(t, StatusPaid, order.Status())
	assert.True(t, order.Changes().Dirty(FieldStatus))

	events := order.DomainEvents()
	require.Len(t, events, 1)
	changed, ok := events[0].(*OrderStatusChangedEvent)
	require.True(t, ok)
	assert.Equal(t, "pending", changed.OldStatus)
	assert.Equal(t, "paid", changed.NewStatus)
}

func TestOrder_SetStatus_AnyToAny(t *testing.T) {
	// no transition graph: completed can go straight back to pending
	order := newTestOrder(t)

	require.NoError(t, order.SetStatus(StatusCompleted))
	require.NoError(t, order.SetStatus(StatusPending))
	require.NoError(t, order.SetStatus(StatusCancelled))

	assert.Equal(t, StatusCancelled, order.Status())
}

func TestOrder_SetStatus_Invalid(t *testing.T) {
	order := newTestOrder(t)

	err := order.SetStatus(OrderStatus("refunded"))

	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, StatusPending, order.Status())
}

func TestOrder_SetStatus_SameStatusIsNoOp(t *testing.T) {
	order := newTestOrder(t)

	require.NoError(t, order.SetStatus(StatusPending))

	assert.False(t, order.Changes().HasChanges())
	assert.Empty(t, order.DomainEvents())
}

func TestOrder_SetItems_RecomputesTotal(t *testing.T) {
	order := newTestOrder(t)

	err := order.SetItems([]OrderItem{
		{ProductID: "p3", Name: "Bracelet", Quantity: 3, UnitPrice: money.MustParse("4.00")},
	})

	require.NoError(t, err)
	assert.Equal(t, "12.00", order.Total().String())
	assert.True(t, order.Changes().Dirty(FieldItems))
}

func TestOrder_CountsAsRevenue(t *testing.T) {
	order := newTestOrder(t)

	assert.False(t, order.CountsAsRevenue())

	require.NoError(t, order.SetStatus(StatusPaid))
	assert.True(t, order.CountsAsRevenue())

	require.NoError(t, order.SetStatus(StatusShipped))
	assert.True(t, order.CountsAsRevenue())

	require.NoError(t, order.SetStatus(StatusCompleted))
	assert.True(t, order.CountsAsRevenue())

	require.NoError(t, order.SetStatus(StatusCancelled))
	assert.False(t, order.CountsAsRevenue())
}

func TestOrder_MarkUpdated(t *testing.T) {
	order := newTestOrder(t)

	require.NoError(t, order.SetCustomerName("Sophie Gagnon"))
	require.NoError(t, order.SetCustomerPhone("+15145559999"))
	order.MarkUpdated(testNow)

	events := order.DomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "order.updated", events[0].EventType())
}

func TestReconstructOrder_StartsClean(t *testing.T) {
	order := ReconstructOrder(
		"order-1", "Marie Tremblay", "+15145551234",
		testItems(), money.MustParse("25.50"), StatusPaid,
		testNow, testNow, clock.NewMockClock(testNow),
	)

	assert.False(t, order.Changes().HasChanges())
	assert.Empty(t, order.DomainEvents())
	assert.Equal(t, StatusPaid, order.Status())
}
