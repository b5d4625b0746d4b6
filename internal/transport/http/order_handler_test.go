package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/bijoux-service/internal/app/order/contracts"
	"github.com/light-bringer/bijoux-service/internal/app/order/domain"
	"github.com/light-bringer/bijoux-service/internal/app/order/queries/get_order"
	"github.com/light-bringer/bijoux-service/internal/app/order/queries/list_orders"
	"github.com/light-bringer/bijoux-service/internal/app/order/usecases/create_order"
	"github.com/light-bringer/bijoux-service/internal/app/order/usecases/delete_order"
	"github.com/light-bringer/bijoux-service/internal/app/order/usecases/update_order"
	"github.com/light-bringer/bijoux-service/internal/pkg/money"
)

type createOrderMock struct {
	orderID string
	err     error
	gotReq  *create_order.Request
}

func (m *createOrderMock) Execute(_ context.Context, req *create_order.Request) (string, error) {
	m.gotReq = req
	return m.orderID, m.err
}

type updateOrderMock struct {
	err    error
	gotReq *update_order.Request
}

func (m *updateOrderMock) Execute(_ context.Context, req *update_order.Request) error {
	m.gotReq = req
	return m.err
}

type deleteOrderMock struct {
	err error
}

func (m *deleteOrderMock) Execute(_ context.Context, _ *delete_order.Request) error {
	return m.err
}

type getOrderMock struct {
	dto *contracts.OrderDTO
	err error
}

func (m *getOrderMock) Execute(_ context.Context, _ *get_order.Request) (*contracts.OrderDTO, error) {
	return m.dto, m.err
}

type listOrdersMock struct {
	result *contracts.ListResult
	err    error
}

func (m *listOrdersMock) Execute(_ context.Context, _ *list_orders.Request) (*contracts.ListResult, error) {
	return m.result, m.err
}

func testOrderDTO() *contracts.OrderDTO {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	return &contracts.OrderDTO{
		OrderID:       "order-1",
		CustomerName:  "Marie Tremblay",
		CustomerPhone: "+15145551234",
		Items: []domain.OrderItem{
			{ProductID: "p1", Name: "Collier perle", Quantity: 2, UnitPrice: money.MustParse("10.00")},
		},
		Total:     money.MustParse("20.00"),
		Status:    "pending",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newOrderRouter(h *OrderHandler) http.Handler {
	return NewRouter(Handlers{
		Products: &ProductHandler{logger: zap.NewNop()},
		Cart:     &CartHandler{logger: zap.NewNop()},
		Orders:   h,
		Stats:    &StatsHandler{logger: zap.NewNop()},
	}, zap.NewNop())
}

func TestOrderHandler_Create(t *testing.T) {
	mock := &createOrderMock{orderID: "order-1"}
	router := newOrderRouter(&OrderHandler{create: mock, logger: zap.NewNop()})

	payload := bytes.NewBufferString(`{
		"customer_name": "Marie Tremblay",
		"customer_phone": "+15145551234",
		"items": [{"product_id": "p1", "name": "Collier perle", "quantity": 2, "unit_price": "10.00"}]
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", payload)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, mock.gotReq)
	assert.Equal(t, "Marie Tremblay", mock.gotReq.CustomerName)
	require.Len(t, mock.gotReq.Items, 1)
	assert.Equal(t, "10.00", mock.gotReq.Items[0].UnitPrice.String())

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "order-1", body["order_id"])
}

func TestOrderHandler_Create_ValidationError(t *testing.T) {
	router := newOrderRouter(&OrderHandler{
		create: &createOrderMock{err: domain.ErrEmptyCustomerName},
		logger: zap.NewNop(),
	})

	payload := bytes.NewBufferString(`{"customer_phone": "+15145551234", "items": []}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", payload)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestOrderHandler_Get(t *testing.T) {
	router := newOrderRouter(&OrderHandler{get: &getOrderMock{dto: testOrderDTO()}, logger: zap.NewNop()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/order-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body orderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "order-1", body.OrderID)
	assert.Equal(t, "20.00", body.Total)
	assert.Equal(t, "pending", body.Status)
}

func TestOrderHandler_Get_NotFound(t *testing.T) {
	router := newOrderRouter(&OrderHandler{get: &getOrderMock{err: domain.ErrOrderNotFound}, logger: zap.NewNop()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderHandler_List(t *testing.T) {
	router := newOrderRouter(&OrderHandler{list: &listOrdersMock{result: &contracts.ListResult{
		Orders:     []*contracts.OrderDTO{testOrderDTO()},
		TotalCount: 1,
	}}, logger: zap.NewNop()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Orders     []orderResponse `json:"orders"`
		TotalCount int64           `json:"total_count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.TotalCount)
	require.Len(t, body.Orders, 1)
}

func TestOrderHandler_Update_StatusOnly(t *testing.T) {
	mock := &updateOrderMock{}
	router := newOrderRouter(&OrderHandler{update: mock, logger: zap.NewNop()})

	payload := bytes.NewBufferString(`{"status": "shipped"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/orders/order-1", payload)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, mock.gotReq)
	require.NotNil(t, mock.gotReq.Status)
	assert.Equal(t, domain.StatusShipped, *mock.gotReq.Status)
	assert.Nil(t, mock.gotReq.CustomerName)
	assert.Nil(t, mock.gotReq.Items)
}

func TestOrderHandler_Update_InvalidStatus(t *testing.T) {
	router := newOrderRouter(&OrderHandler{
		update: &updateOrderMock{err: domain.ErrInvalidStatus},
		logger: zap.NewNop(),
	})

	payload := bytes.NewBufferString(`{"status": "refunded"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/orders/order-1", payload)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestOrderHandler_Delete(t *testing.T) {
	router := newOrderRouter(&OrderHandler{delete: &deleteOrderMock{}, logger: zap.NewNop()})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/orders/order-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
