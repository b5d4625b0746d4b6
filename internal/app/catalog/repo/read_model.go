package repo

import (
	"context"
	"fmt"
	"math/big"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/bijoux-service/internal/app/catalog/contracts"
	"github.com/light-bringer/bijoux-service/internal/app/catalog/domain"
	"github.com/light-bringer/bijoux-service/internal/models/m_product"
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

// GetProductByID retrieves a product DTO by ID.
func (rm *ReadModelImpl) GetProductByID(ctx context.Context, productID string) (*contracts.ProductDTO, error) {
	row, err := rm.client.Single().ReadRow(ctx, m_product.TableName, spanner.Key{productID}, m_product.Columns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to read product: %w", err)
	}

	var data m_product.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}

	return dataToDTO(&data)
}

// ListProducts retrieves a filtered list of products, newest first.
func (rm *ReadModelImpl) ListProducts(ctx context.Context, filter *contracts.ListFilter) (*contracts.ListResult, error) {
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 50 // Default page size
	}
	if pageSize > 200 {
		pageSize = 200 // Max page size
	}

	builder := query.From(m_product.TableName).Select(m_product.Columns()...)

	if filter.Category != "" {
		builder = builder.Where(query.Eq(m_product.Category, filter.Category))
	}

	if filter.Status != "" {
		builder = builder.Where(query.Eq(m_product.Status, filter.Status))
	}

	countStmt := builder.Count().Build()

	stmt := builder.
		OrderBy(m_product.CreatedAt, query.Desc).
		Limit(int64(pageSize)).
		Offset(int64(filter.Offset)).
		Build()

	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	products := make([]*contracts.ProductDTO, 0, pageSize)

	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate products: %w", err)
		}

		var data m_product.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse product: %w", err)
		}

		dto, err := dataToDTO(&data)
		if err != nil {
			return nil, err
		}

		products = append(products, dto)
	}

	total, err := rm.count(ctx, countStmt)
	if err != nil {
		return nil, err
	}

	return &contracts.ListResult{
		Products:   products,
		TotalCount: total,
	}, nil
}

// CatalogStats aggregates counts and average price over the non-archived
// catalog. Prices are stored as rationals, so the aggregation happens in
// the domain rather than in SQL.
func (rm *ReadModelImpl) CatalogStats(ctx context.Context) (*contracts.CatalogStats, error) {
	stmt := query.From(m_product.TableName).
		Select(m_product.Stock, m_product.IsBestSeller, m_product.PriceNumerator, m_product.PriceDenominator).
		Where(query.In(m_product.Status, string(domain.StatusActive), string(domain.StatusInactive))).
		Build()

	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var inputs []domain.StatsInput

	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate products: %w", err)
		}

		var stock int64
		var isBestSeller bool
		var num, den int64
		if err := row.Columns(&stock, &isBestSeller, &num, &den); err != nil {
			return nil, fmt.Errorf("failed to parse stats row: %w", err)
		}

		price, err := money.New(num, den)
		if err != nil {
			return nil, fmt.Errorf("invalid stored price: %w", err)
		}

		inputs = append(inputs, domain.StatsInput{
			Stock:        stock,
			IsBestSeller: isBestSeller,
			Price:        price,
		})
	}

	summary, err := domain.SummarizeCatalog(inputs)
	if err != nil {
		return nil, err
	}

	return &contracts.CatalogStats{
		TotalProducts:    summary.TotalProducts,
		LowStockProducts: summary.LowStockProducts,
		BestSellersCount: summary.BestSellersCount,
		AveragePrice:     summary.AveragePrice,
	}, nil
}

func (rm *ReadModelImpl) count(ctx context.Context, stmt spanner.Statement) (int64, error) {
	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	var count int64
	if err := row.Column(0, &count); err != nil {
		return 0, fmt.Errorf("failed to parse count: %w", err)
	}
	return count, nil
}

// dataToDTO converts the database model into a query DTO.
func dataToDTO(data *m_product.Data) (*contracts.ProductDTO, error) {
	price, err := money.New(data.PriceNumerator, data.PriceDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid stored price for product %s: %w", data.ProductID, err)
	}

	effective := price.Copy()
	if data.DiscountPercent > 0 {
		effective = price.MultiplyByRat(big.NewRat(100-data.DiscountPercent, 100))
	}

	return &contracts.ProductDTO{
		ProductID:       data.ProductID,
		Name:            data.Name,
		Description:     data.Description,
		Category:        data.Category,
		Price:           price,
		EffectivePrice:  effective,
		Stock:           data.Stock,
		DiscountPercent: data.DiscountPercent,
		IsNew:           data.IsNew,
		IsBestSeller:    data.IsBestSeller,
		ImageURL:        data.ImageURL,
		HoverImageURL:   data.HoverImageURL.StringVal,
		Status:          data.Status,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}, nil
}
