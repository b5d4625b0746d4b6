package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	catalogcontracts "github.com/light-bringer/bijoux-service/internal/app/catalog/contracts"
	catalogdomain "github.com/light-bringer/bijoux-service/internal/app/catalog/domain"
	"github.com/light-bringer/bijoux-service/internal/app/cart/domain"
	"github.com/light-bringer/bijoux-service/internal/pkg/money"
)

type fakeStore struct {
	states  map[string]domain.State
	loadErr error
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{states: make(map[string]domain.State)}
}

func (f *fakeStore) Load(_ context.Context, sessionID string) (domain.State, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.states[sessionID], nil
}

func (f *fakeStore) Save(_ context.Context, sessionID string, state domain.State) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.states[sessionID] = state
	return nil
}

func (f *fakeStore) Delete(_ context.Context, sessionID string) error {
	delete(f.states, sessionID)
	return nil
}

type fakeCatalog struct {
	products map[string]*catalogcontracts.ProductDTO
}

func (f *fakeCatalog) GetProductByID(_ context.Context, productID string) (*catalogcontracts.ProductDTO, error) {
	p, ok := f.products[productID]
	if !ok {
		return nil, catalogdomain.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeCatalog) ListProducts(_ context.Context, _ *catalogcontracts.ListFilter) (*catalogcontracts.ListResult, error) {
	return &catalogcontracts.ListResult{}, nil
}

func (f *fakeCatalog) CatalogStats(_ context.Context) (*catalogcontracts.CatalogStats, error) {
	return &catalogcontracts.CatalogStats{}, nil
}

func dto(id, name, price, effective string) *catalogcontracts.ProductDTO {
	return &catalogcontracts.ProductDTO{
		ProductID:      id,
		Name:           name,
		Category:       "Colliers",
		Price:          money.MustParse(price),
		EffectivePrice: money.MustParse(effective),
		ImageURL:       "https://cdn.example.com/products/" + id + "_main.jpg",
		Status:         "active",
	}
}

func newTestService(store *fakeStore, catalog *fakeCatalog) *Service {
	cfg := Config{
		SiteOrigin:     "https://bijoux.example.com",
		WhatsAppNumber: "15816884483",
	}
	return NewService(store, catalog, cfg, zap.NewNop())
}

func TestAddItem_SnapshotsEffectivePrice(t *testing.T) {
	store := newFakeStore()
	catalog := &fakeCatalog{products: map[string]*catalogcontracts.ProductDTO{
		"p1": dto("p1", "Collier perle", "20.00", "15.00"),
	}}
	svc := newTestService(store, catalog)

	state, err := svc.AddItem(context.Background(), "sess-1", "p1")

	require.NoError(t, err)
	require.Len(t, state, 1)
	assert.Equal(t, "15.00", state[0].UnitPrice.String())
	assert.Equal(t, "Collier perle", state[0].Name)

	// persisted, not just returned
	assert.Len(t, store.states["sess-1"], 1)
}

func TestAddItem_UnknownProduct(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeCatalog{products: map[string]*catalogcontracts.ProductDTO{}})

	_, err := svc.AddItem(context.Background(), "sess-1", "missing")

	assert.ErrorIs(t, err, catalogdomain.ErrProductNotFound)
}

func TestAddItem_LaterCatalogChangeDoesNotTouchCart(t *testing.T) {
	store := newFakeStore()
	catalog := &fakeCatalog{products: map[string]*catalogcontracts.ProductDTO{
		"p1": dto("p1", "Collier perle", "20.00", "20.00"),
	}}
	svc := newTestService(store, catalog)

	_, err := svc.AddItem(context.Background(), "sess-1", "p1")
	require.NoError(t, err)

	catalog.products["p1"] = dto("p1", "Collier perle", "99.00", "99.00")

	state, err := svc.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "20.00", state[0].UnitPrice.String())
}

func TestSetItemQuantity(t *testing.T) {
	store := newFakeStore()
	catalog := &fakeCatalog{products: map[string]*catalogcontracts.ProductDTO{
		"p1": dto("p1", "Collier", "10.00", "10.00"),
	}}
	svc := newTestService(store, catalog)

	_, err := svc.AddItem(context.Background(), "sess-1", "p1")
	require.NoError(t, err)

	state, err := svc.SetItemQuantity(context.Background(), "sess-1", "p1", 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), state[0].Quantity)

	state, err = svc.SetItemQuantity(context.Background(), "sess-1", "p1", 0)
	require.NoError(t, err)
	assert.Empty(t, state)
}

func TestRemoveItem(t *testing.T) {
	store := newFakeStore()
	catalog := &fakeCatalog{products: map[string]*catalogcontracts.ProductDTO{
		"p1": dto("p1", "Collier", "10.00", "10.00"),
		"p2": dto("p2", "Bague", "8.00", "8.00"),
	}}
	svc := newTestService(store, catalog)

	_, err := svc.AddItem(context.Background(), "sess-1", "p1")
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), "sess-1", "p2")
	require.NoError(t, err)

	state, err := svc.RemoveItem(context.Background(), "sess-1", "p1")

	require.NoError(t, err)
	require.Len(t, state, 1)
	assert.Equal(t, "p2", state[0].ProductID)
}

func TestClear(t *testing.T) {
	store := newFakeStore()
	catalog := &fakeCatalog{products: map[string]*catalogcontracts.ProductDTO{
		"p1": dto("p1", "Collier", "10.00", "10.00"),
	}}
	svc := newTestService(store, catalog)

	_, err := svc.AddItem(context.Background(), "sess-1", "p1")
	require.NoError(t, err)

	require.NoError(t, svc.Clear(context.Background(), "sess-1"))

	state, err := svc.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Empty(t, state)
}

func TestCheckout(t *testing.T) {
	store := newFakeStore()
	catalog := &fakeCatalog{products: map[string]*catalogcontracts.ProductDTO{
		"p1": dto("p1", "Collier perle", "10.00", "10.00"),
	}}
	svc := newTestService(store, catalog)

	_, err := svc.AddItem(context.Background(), "sess-1", "p1")
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), "sess-1", "p1")
	require.NoError(t, err)

	result, err := svc.Checkout(context.Background(), "sess-1")

	require.NoError(t, err)
	assert.Contains(t, result.Message, "*NOUVELLE COMMANDE DE BIJOUX*")
	assert.Contains(t, result.Message, "*TOTAL : 20.00 $*")
	assert.Contains(t, result.WhatsAppLink, "https://wa.me/15816884483?text=")
	assert.Contains(t, result.SMSLink, "sms:15816884483?body=")

	// cart is cleared whether or not the message is ever sent
	state, err := svc.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Empty(t, state)
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeCatalog{products: map[string]*catalogcontracts.ProductDTO{}})

	_, err := svc.Checkout(context.Background(), "sess-1")

	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestGet_PropagatesStoreError(t *testing.T) {
	store := newFakeStore()
	store.loadErr = errors.New("spanner unavailable")
	svc := newTestService(store, &fakeCatalog{})

	_, err := svc.Get(context.Background(), "sess-1")

	assert.Error(t, err)
}
