package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/bijoux-service/internal/app/order/contracts"
	"github.com/light-bringer/bijoux-service/internal/app/order/domain"
	"github.com/light-bringer/bijoux-service/internal/models/m_order"
	"github.com/light-bringer/bijoux-service/internal/pkg/clock"
	"github.com/light-bringer/bijoux-service/internal/pkg/money"
)

// OrderRepo implements OrderRepository for Spanner.
type OrderRepo struct {
	client *spanner.Client
	model  *m_order.Model
	clock  clock.Clock
}

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(client *spanner.Client, clk clock.Clock) contracts.OrderRepository {
	return &OrderRepo{
		client: client,
		model:  m_order.NewModel(),
		clock:  clk,
	}
}

// InsertMut creates a mutation for inserting a new order.
func (r *OrderRepo) InsertMut(order *domain.Order) *spanner.Mutation {
	total := order.Total()

	return r.model.InsertMut(&m_order.Data{
		OrderID:          order.ID(),
		CustomerName:     order.CustomerName(),
		CustomerPhone:    order.CustomerPhone(),
		Items:            spanner.NullJSON{Value: order.Items(), Valid: true},
		TotalNumerator:   total.Numerator(),
		TotalDenominator: total.Denominator(),
		Status:           string(order.Status()),
	})
}

// UpdateMut creates a mutation for updating an order (only dirty fields).
func (r *OrderRepo) UpdateMut(order *domain.Order) *spanner.Mutation {
	changes := order.Changes()
	if !changes.HasChanges() {
		return nil
	}

	updates := make(map[string]interface{})

	if changes.Dirty(domain.FieldCustomerName) {
		updates[m_order.CustomerName] = order.CustomerName()
	}

	if changes.Dirty(domain.FieldCustomerPhone) {
		updates[m_order.CustomerPhone] = order.CustomerPhone()
	}

	if changes.Dirty(domain.FieldItems) {
		total := order.Total()
		updates[m_order.Items] = spanner.NullJSON{Value: order.Items(), Valid: true}
		updates[m_order.TotalNumerator] = total.Numerator()
		updates[m_order.TotalDenominator] = total.Denominator()
	}

	if changes.Dirty(domain.FieldStatus) {
		updates[m_order.Status] = string(order.Status())
	}

	if len(updates) == 0 {
		return nil
	}

	return r.model.UpdateMut(order.ID(), updates)
}

// DeleteMut creates a mutation for removing an order.
func (r *OrderRepo) DeleteMut(orderID string) *spanner.Mutation {
	return r.model.DeleteMut(orderID)
}

// GetByID retrieves an order by ID, reconstructing the domain aggregate.
func (r *OrderRepo) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	row, err := r.client.Single().ReadRow(ctx, m_order.TableName, spanner.Key{orderID}, m_order.Columns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to read order: %w", err)
	}

	var data m_order.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse order: %w", err)
	}

	return r.dataToDomain(&data)
}

// dataToDomain reconstructs a domain aggregate from the database model.
func (r *OrderRepo) dataToDomain(data *m_order.Data) (*domain.Order, error) {
	total, err := money.New(data.TotalNumerator, data.TotalDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid stored total for order %s: %w", data.OrderID, err)
	}

	items, err := decodeItems(data.Items)
	if err != nil {
		return nil, fmt.Errorf("invalid stored items for order %s: %w", data.OrderID, err)
	}

	return domain.ReconstructOrder(
		data.OrderID,
		data.CustomerName,
		data.CustomerPhone,
		items,
		total,
		domain.OrderStatus(data.Status),
		data.CreatedAt,
		data.UpdatedAt,
		r.clock,
	), nil
}

// decodeItems turns the stored JSON document back into typed order
// lines. NullJSON decodes into generic values, so the document is
// re-marshaled and parsed against the typed items.
func decodeItems(items spanner.NullJSON) ([]domain.OrderItem, error) {
	if !items.Valid {
		return nil, nil
	}

	raw, err := json.Marshal(items.Value)
	if err != nil {
		return nil, err
	}

	var out []domain.OrderItem
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
