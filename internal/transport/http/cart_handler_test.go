package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/bijoux-service/internal/app/cart/domain"
	"github.com/light-bringer/bijoux-service/internal/app/cart/service"
	catalogdomain "github.com/light-bringer/bijoux-service/internal/app/catalog/domain"
	"github.com/light-bringer/bijoux-service/internal/pkg/money"
)

type cartMock struct {
	state    domain.State
	checkout *service.CheckoutResult
	err      error
}

func (m *cartMock) Get(_ context.Context, _ string) (domain.State, error) {
	return m.state, m.err
}

func (m *cartMock) AddItem(_ context.Context, _, _ string) (domain.State, error) {
	return m.state, m.err
}

func (m *cartMock) SetItemQuantity(_ context.Context, _, _ string, _ int64) (domain.State, error) {
	return m.state, m.err
}

func (m *cartMock) RemoveItem(_ context.Context, _, _ string) (domain.State, error) {
	return m.state, m.err
}

func (m *cartMock) Clear(_ context.Context, _ string) error {
	return m.err
}

func (m *cartMock) Checkout(_ context.Context, _ string) (*service.CheckoutResult, error) {
	return m.checkout, m.err
}

func testCartState() domain.State {
	return domain.State{
		{ProductID: "p1", Name: "Collier perle", UnitPrice: money.MustParse("10.00"), Quantity: 2, Category: "Colliers"},
		{ProductID: "p2", Name: "Bague argent", UnitPrice: money.MustParse("5.50"), Quantity: 1, Category: "Bagues"},
	}
}

func newCartRouter(mock *cartMock) http.Handler {
	// the other handlers are never reached by these requests
	return NewRouter(Handlers{
		Products: &ProductHandler{logger: zap.NewNop()},
		Cart:     NewCartHandler(mock, zap.NewNop()),
		Orders:   &OrderHandler{logger: zap.NewNop()},
		Stats:    &StatsHandler{logger: zap.NewNop()},
	}, zap.NewNop())
}

func TestCartHandler_Get(t *testing.T) {
	router := newCartRouter(&cartMock{state: testCartState()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/sess-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body cartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "25.50", body.Total)
	assert.Equal(t, int64(3), body.Count)
	require.Len(t, body.Items, 2)
	assert.Equal(t, "20.00", body.Items[0].Subtotal)
}

func TestCartHandler_AddItem(t *testing.T) {
	router := newCartRouter(&cartMock{state: testCartState()})

	payload := bytes.NewBufferString(`{"product_id":"p1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/sess-1/items", payload)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCartHandler_AddItem_MissingProductID(t *testing.T) {
	router := newCartRouter(&cartMock{})

	payload := bytes.NewBufferString(`{}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/sess-1/items", payload)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartHandler_AddItem_UnknownProduct(t *testing.T) {
	router := newCartRouter(&cartMock{err: catalogdomain.ErrProductNotFound})

	payload := bytes.NewBufferString(`{"product_id":"missing"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/sess-1/items", payload)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartHandler_SetQuantity(t *testing.T) {
	router := newCartRouter(&cartMock{state: testCartState()})

	payload := bytes.NewBufferString(`{"quantity":5}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/cart/sess-1/items/p1", payload)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCartHandler_Clear(t *testing.T) {
	router := newCartRouter(&cartMock{})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/sess-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCartHandler_Checkout(t *testing.T) {
	router := newCartRouter(&cartMock{checkout: &service.CheckoutResult{
		Message:      "*NOUVELLE COMMANDE DE BIJOUX*",
		WhatsAppLink: "https://wa.me/15816884483?text=abc",
		SMSLink:      "sms:15816884483?body=abc",
	}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/sess-1/checkout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["whatsapp_link"], "wa.me")
	assert.Contains(t, body["sms_link"], "sms:")
}

func TestCartHandler_Checkout_EmptyCart(t *testing.T) {
	router := newCartRouter(&cartMock{err: service.ErrEmptyCart})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/sess-1/checkout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
