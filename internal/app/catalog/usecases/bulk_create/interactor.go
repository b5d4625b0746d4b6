package bulk_create

import (
	"context"

	"github.com/light-bringer/bijoux-service/internal/app/catalog/usecases/create_product"
)

// Item is one product in a bulk upload batch.
type Item = create_product.Request

// Progress reports the outcome of a single item while the batch runs.
type Progress struct {
	Index     int
	Total     int
	ProductID string
	Err       error
}

// Request contains a batch of products to create. OnProgress, when set,
// is invoked after each item completes.
type Request struct {
	Items      []Item
	OnProgress func(Progress)
}

// Result summarizes a finished batch.
type Result struct {
	ProductIDs []string
	Succeeded  int
	Failed     int
	Errors     []error
}

type productCreator interface {
	Execute(ctx context.Context, req *create_product.Request) (string, error)
}

// Interactor handles the bulk create use case. Items are processed
// strictly one after another so a partial failure leaves a clean
// prefix of created products and per-item errors for the rest.
type Interactor struct {
	createProduct productCreator
}

// NewInteractor creates a new bulk create interactor.
func NewInteractor(createProduct productCreator) *Interactor {
	return &Interactor{createProduct: createProduct}
}

// Execute creates the products in order. A failed item does not stop
// the batch; its error is recorded and the loop continues. Context
// cancellation stops the batch between items.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Result, error) {
	result := &Result{
		ProductIDs: make([]string, 0, len(req.Items)),
		Errors:     make([]error, len(req.Items)),
	}

	total := len(req.Items)
	for idx := range req.Items {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		item := req.Items[idx]
		productID, err := i.createProduct.Execute(ctx, &item)
		if err != nil {
			result.Failed++
			result.Errors[idx] = err
		} else {
			result.Succeeded++
			result.ProductIDs = append(result.ProductIDs, productID)
		}

		if req.OnProgress != nil {
			req.OnProgress(Progress{
				Index:     idx,
				Total:     total,
				ProductID: productID,
				Err:       err,
			})
		}
	}

	return result, nil
}
