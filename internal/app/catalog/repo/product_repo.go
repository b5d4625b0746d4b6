package repo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/bijoux-service/internal/app/catalog/contracts"
	"github.com/light-bringer/bijoux-service/internal/app/catalog/domain"
	"github.com/light-bringer/bijoux-service/internal/models/m_product"
	"github.com/light-bringer/bijoux-service/internal/pkg/clock"
	"github.com/light-bringer/bijoux-service/internal/pkg/money"
)

// ProductRepo implements ProductRepository for Spanner.
type ProductRepo struct {
	client *spanner.Client
	model  *m_product.Model
	clock  clock.Clock
}

// NewProductRepo creates a new ProductRepo.
func NewProductRepo(client *spanner.Client, clk clock.Clock) contracts.ProductRepository {
	return &ProductRepo{
		client: client,
		model:  m_product.NewModel(),
		clock:  clk,
	}
}

// InsertMut creates a mutation for inserting a new product.
func (r *ProductRepo) InsertMut(product *domain.Product) *spanner.Mutation {
	return r.model.InsertMut(domainToData(product))
}

// UpdateMut creates a mutation for updating a product (only dirty fields).
func (r *ProductRepo) UpdateMut(product *domain.Product) *spanner.Mutation {
	changes := product.Changes()
	if !changes.HasChanges() {
		return nil
	}

	updates := make(map[string]interface{})

	if changes.Dirty(domain.FieldName) {
		updates[m_product.Name] = product.Name()
	}

	if changes.Dirty(domain.FieldDescription) {
		updates[m_product.Description] = product.Description()
	}

	if changes.Dirty(domain.FieldCategory) {
		updates[m_product.Category] = product.Category()
	}

	if changes.Dirty(domain.FieldPrice) {
		price := product.Price()
		updates[m_product.PriceNumerator] = price.Numerator()
		updates[m_product.PriceDenominator] = price.Denominator()
	}

	if changes.Dirty(domain.FieldStock) {
		updates[m_product.Stock] = product.Stock()
	}

	if changes.Dirty(domain.FieldDiscount) {
		updates[m_product.DiscountPercent] = product.DiscountPercent()
	}

	if changes.Dirty(domain.FieldIsNew) {
		updates[m_product.IsNew] = product.IsNew()
	}

	if changes.Dirty(domain.FieldIsBestSeller) {
		updates[m_product.IsBestSeller] = product.IsBestSeller()
	}

	if changes.Dirty(domain.FieldImages) {
		updates[m_product.ImageURL] = product.ImageURL()
		updates[m_product.HoverImageURL] = nullString(product.HoverImageURL())
	}

	if changes.Dirty(domain.FieldStatus) {
		updates[m_product.Status] = string(product.Status())
	}

	if changes.Dirty(domain.FieldArchivedAt) {
		if archivedAt := product.ArchivedAt(); archivedAt != nil {
			updates[m_product.ArchivedAt] = *archivedAt
		} else {
			updates[m_product.ArchivedAt] = spanner.NullTime{}
		}
	}

	if len(updates) == 0 {
		return nil
	}

	return r.model.UpdateMut(product.ID(), updates)
}

// GetByID retrieves a product by ID, reconstructing the domain aggregate.
func (r *ProductRepo) GetByID(ctx context.Context, productID string) (*domain.Product, error) {
	row, err := r.client.Single().ReadRow(ctx, m_product.TableName, spanner.Key{productID}, m_product.Columns())
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

	return r.dataToDomain(&data)
}

// Exists checks if a product exists.
func (r *ProductRepo) Exists(ctx context.Context, productID string) (bool, error) {
	_, err := r.client.Single().ReadRow(ctx, m_product.TableName, spanner.Key{productID}, []string{m_product.ProductID})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return true, nil
}

// domainToData converts a domain aggregate to the database model.
func domainToData(product *domain.Product) *m_product.Data {
	price := product.Price()

	var archivedAt spanner.NullTime
	if t := product.ArchivedAt(); t != nil {
		archivedAt = spanner.NullTime{Time: *t, Valid: true}
	}

	return &m_product.Data{
		ProductID:        product.ID(),
		Name:             product.Name(),
		Description:      product.Description(),
		Category:         product.Category(),
		PriceNumerator:   price.Numerator(),
		PriceDenominator: price.Denominator(),
		Stock:            product.Stock(),
		DiscountPercent:  product.DiscountPercent(),
		IsNew:            product.IsNew(),
		IsBestSeller:     product.IsBestSeller(),
		ImageURL:         product.ImageURL(),
		HoverImageURL:    nullString(product.HoverImageURL()),
		Status:           string(product.Status()),
		ArchivedAt:       archivedAt,
	}
}

// dataToDomain reconstructs a domain aggregate from the database model.
func (r *ProductRepo) dataToDomain(data *m_product.Data) (*domain.Product, error) {
	price, err := money.New(data.PriceNumerator, data.PriceDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid stored price for product %s: %w", data.ProductID, err)
	}

	var archivedAt *time.Time
	if data.ArchivedAt.Valid {
		t := data.ArchivedAt.Time
		archivedAt = &t
	}

	return domain.ReconstructProduct(
		data.ProductID,
		data.Name,
		data.Description,
		data.Category,
		price,
		data.Stock,
		data.DiscountPercent,
		data.IsNew,
		data.IsBestSeller,
		data.ImageURL,
		data.HoverImageURL.StringVal,
		domain.ProductStatus(data.Status),
		data.CreatedAt,
		data.UpdatedAt,
		archivedAt,
		r.clock,
	), nil
}

func nullString(s string) spanner.NullString {
	return spanner.NullString{StringVal: s, Valid: s != ""}
}
