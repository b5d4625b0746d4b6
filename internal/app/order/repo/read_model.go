package repo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/bijoux-service/internal/app/order/contracts"
	"github.com/light-bringer/bijoux-service/internal/app/order/domain"
	"github.com/light-bringer/bijoux-service/internal/models/m_order"
	"github.com/light-bringer/bijoux-service/internal/pkg/money"
	"github.com/light-bringer/bijoux-service/internal/pkg/query"
)

// ReadModelImpl implements ReadModel for Spanner.
type ReadModelImpl struct {
	client *spanner.Client
}

// NewReadModel creates a new ReadModel implementation.
func NewReadModel(client *spanner.Client) contracts.ReadModel {
	return &ReadModelImpl{
		client: client,
	}
}

// GetOrderByID retrieves an order DTO by ID.
func (rm *ReadModelImpl) GetOrderByID(ctx context.Context, orderID string) (*contracts.OrderDTO, error) {
	row, err := rm.client.Single().ReadRow(ctx, m_order.TableName, spanner.Key{orderID}, m_order.Columns())
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

	return dataToDTO(&data)
}

// ListOrders retrieves a filtered list of orders, newest first.
func (rm *ReadModelImpl) ListOrders(ctx context.Context, filter *contracts.ListFilter) (*contracts.ListResult, error) {
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 50 // Default page size
	}
	if pageSize > 200 {
		pageSize = 200 // Max page size
	}

	builder := query.From(m_order.TableName).Select(m_order.Columns()...)

	if filter.Status != "" {
		builder = builder.Where(query.Eq(m_order.Status, filter.Status))
	}

	countStmt := builder.Count().Build()

	stmt := builder.
		OrderBy(m_order.CreatedAt, query.Desc).
		Limit(int64(pageSize)).
		Offset(int64(filter.Offset)).
		Build()

	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	orders := make([]*contracts.OrderDTO, 0, pageSize)

	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate orders: %w", err)
		}

		var data m_order.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse order: %w", err)
		}

		dto, err := dataToDTO(&data)
		if err != nil {
			return nil, err
		}

		orders = append(orders, dto)
	}

	total, err := rm.count(ctx, countStmt)
	if err != nil {
		return nil, err
	}

	return &contracts.ListResult{
		Orders:     orders,
		TotalCount: total,
	}, nil
}

// RevenueStats fetches every order's status, total and creation time
// in a single scan and hands the aggregation to the domain.
func (rm *ReadModelImpl) RevenueStats(ctx context.Context, monthStart time.Time) (*contracts.RevenueStats, error) {
	stmt := query.From(m_order.TableName).
		Select(m_order.Status, m_order.TotalNumerator, m_order.TotalDenominator, m_order.CreatedAt).
		Build()

	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var inputs []domain.RevenueInput

	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate orders: %w", err)
		}

		var status string
		var num, den int64
		var createdAt time.Time
		if err := row.Columns(&status, &num, &den, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse stats row: %w", err)
		}

		total, err := money.New(num, den)
		if err != nil {
			return nil, fmt.Errorf("invalid stored total: %w", err)
		}

		inputs = append(inputs, domain.RevenueInput{
			Status:    domain.OrderStatus(status),
			Total:     total,
			CreatedAt: createdAt,
		})
	}

	summary, err := domain.SummarizeRevenue(inputs, monthStart)
	if err != nil {
		return nil, err
	}

	return &contracts.RevenueStats{
		TotalRevenue:      summary.TotalRevenue,
		TotalSales:        summary.TotalSales,
		MonthlyRevenue:    summary.MonthlyRevenue,
		PendingOrders:     summary.PendingOrders,
		AverageOrderValue: summary.AverageOrderValue,
	}, nil
}

func (rm *ReadModelImpl) count(ctx context.Context, stmt spanner.Statement) (int64, error) {
	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var count int64
	if err := row.Column(0, &count); err != nil {
		return 0, fmt.Errorf("failed to parse count: %w", err)
	}
	return count, nil
}

// dataToDTO converts the database model into a query DTO.
func dataToDTO(data *m_order.Data) (*contracts.OrderDTO, error) {
	total, err := money.New(data.TotalNumerator, data.TotalDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid stored total for order %s: %w", data.OrderID, err)
	}

	items, err := decodeItems(data.Items)
	if err != nil {
		return nil, fmt.Errorf("invalid stored items for order %s: %w", data.OrderID, err)
	}

	return &contracts.OrderDTO{
		OrderID:       data.OrderID,
		CustomerName:  data.CustomerName,
		CustomerPhone: data.CustomerPhone,
		Items:         items,
		Total:         total,
		Status:        data.Status,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}, nil
}
