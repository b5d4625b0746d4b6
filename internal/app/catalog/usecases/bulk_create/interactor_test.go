package bulk_create

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/bijoux-service/internal/app/catalog/usecases/create_product"
	"github.com/light-bringer/bijoux-service/internal/pkg/money"
)

var errRejected = errors.New("rejected")

type fakeCreator struct {
	calls   []string
	failOn  map[string]error
	onCall  func()
	nextSeq int
}

func (f *fakeCreator) Execute(ctx context.Context, req *create_product.Request) (string, error) {
	f.calls = append(f.calls, req.Name)
	if f.onCall != nil {
		f.onCall()
	}
	if err, ok := f.failOn[req.Name]; ok {
		return "", err
	}
	f.nextSeq++
	return fmt.Sprintf("id-%d", f.nextSeq), nil
}

func batchItems(names ...string) []Item {
	items := make([]Item, 0, len(names))
	for _, name := range names {
		items = append(items, Item{
			Name:        name,
			Description: "Desc",
			Category:    "Colliers",
			Price:       money.MustParse("10.00"),
			Stock:       10,
		})
	}
	return items
}

func TestInteractor_Execute(t *testing.T) {
	t.Run("creates all items in order", func(t *testing.T) {
		creator := &fakeCreator{}
		interactor := NewInteractor(creator)

		result, err := interactor.Execute(context.Background(), &Request{
			Items: batchItems("Collier A", "Bague B", "Bracelet C"),
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"Collier A", "Bague B", "Bracelet C"}, creator.calls)
		assert.Equal(t, []string{"id-1", "id-2", "id-3"}, result.ProductIDs)
		assert.Equal(t, 3, result.Succeeded)
		assert.Equal(t, 0, result.Failed)
	})

	t.Run("a failed item does not stop the batch", func(t *testing.T) {
		creator := &fakeCreator{failOn: map[string]error{"Bague B": errRejected}}
		interactor := NewInteractor(creator)

		result, err := interactor.Execute(context.Background(), &Request{
			Items: batchItems("Collier A", "Bague B", "Bracelet C"),
		})
		require.NoError(t, err)

		assert.Equal(t, 2, result.Succeeded)
		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, []string{"id-1", "id-2"}, result.ProductIDs)

		require.Len(t, result.Errors, 3)
		assert.NoError(t, result.Errors[0])
		assert.ErrorIs(t, result.Errors[1], errRejected)
		assert.NoError(t, result.Errors[2])
	})

	t.Run("progress is reported per item with batch total", func(t *testing.T) {
		creator := &fakeCreator{failOn: map[string]error{"Bague B": errRejected}}
		interactor := NewInteractor(creator)

		var seen []Progress
		_, err := interactor.Execute(context.Background(), &Request{
			Items:      batchItems("Collier A", "Bague B", "Bracelet C"),
			OnProgress: func(p Progress) { seen = append(seen, p) },
		})
		require.NoError(t, err)

		require.Len(t, seen, 3)
		for i, p := range seen {
			assert.Equal(t, i, p.Index)
			assert.Equal(t, 3, p.Total)
		}
		assert.Equal(t, "id-1", seen[0].ProductID)
		assert.ErrorIs(t, seen[1].Err, errRejected)
		assert.Empty(t, seen[1].ProductID)
		assert.Equal(t, "id-2", seen[2].ProductID)
	})

	t.Run("cancellation stops the batch between items", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		creator := &fakeCreator{}
		creator.onCall = func() { cancel() }
		interactor := NewInteractor(creator)

		result, err := interactor.Execute(ctx, &Request{
			Items: batchItems("Collier A", "Bague B", "Bracelet C"),
		})
		assert.ErrorIs(t, err, context.Canceled)

		assert.Equal(t, []string{"Collier A"}, creator.calls)
		assert.Equal(t, 1, result.Succeeded)
	})
}
