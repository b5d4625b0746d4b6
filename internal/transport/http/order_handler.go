package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
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

type orderCreator interface {
	Execute(ctx context.Context, req *create_order.Request) (string, error)
}

type orderUpdater interface {
	Execute(ctx context.Context, req *update_order.Request) error
}

type orderDeleter interface {
	Execute(ctx context.Context, req *delete_order.Request) error
}

type orderGetter interface {
	Execute(ctx context.Context, req *get_order.Request) (*contracts.OrderDTO, error)
}

type orderLister interface {
	Execute(ctx context.Context, req *list_orders.Request) (*contracts.ListResult, error)
}

// OrderHandler serves the back-office order endpoints.
type OrderHandler struct {
	create orderCreator
	update orderUpdater
	delete orderDeleter
	get    orderGetter
	list   orderLister
	logger *zap.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(
	create orderCreator,
	update orderUpdater,
	delete orderDeleter,
	get orderGetter,
	list orderLister,
	logger *zap.Logger,
) *OrderHandler {
	return &OrderHandler{
		create: create,
		update: update,
		delete: delete,
		get:    get,
		list:   list,
		logger: logger,
	}
}

type orderItemPayload struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

type orderResponse struct {
	OrderID       string             `json:"order_id"`
	CustomerName  string             `json:"customer_name"`
	CustomerPhone string             `json:"customer_phone"`
	Items         []orderItemPayload `json:"items"`
	Total         string             `json:"total"`
	Status        string             `json:"status"`
	CreatedAt     string             `json:"created_at"`
	UpdatedAt     string             `json:"updated_at"`
}

func toOrderResponse(dto *contracts.OrderDTO) *orderResponse {
	items := make([]orderItemPayload, 0, len(dto.Items))
	for _, item := range dto.Items {
		items = append(items, orderItemPayload{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.String(),
		})
	}

	return &orderResponse{
		OrderID:       dto.OrderID,
		CustomerName:  dto.CustomerName,
		CustomerPhone: dto.CustomerPhone,
		Items:         items,
		Total:         dto.Total.String(),
		Status:        dto.Status,
		CreatedAt:     dto.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:     dto.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func parseItems(payload []orderItemPayload) ([]domain.OrderItem, error) {
	items := make([]domain.OrderItem, 0, len(payload))
	for _, p := range payload {
		price, err := money.Parse(p.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.OrderItem{
			ProductID: p.ProductID,
			Name:      p.Name,
			Quantity:  p.Quantity,
			UnitPrice: price,
		})
	}
	return items, nil
}

// List handles GET /api/v1/orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := &list_orders.Request{Status: q.Get("status")}
	if v := q.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_page_size", "page_size must be an integer")
			return
		}
		req.PageSize = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "invalid_offset", "offset must be a non-negative integer")
			return
		}
		req.Offset = n
	}

	result, err := h.list.Execute(r.Context(), req)
	if err != nil {
		h.logger.Error("list orders failed", zap.Error(err))
		respondDomainError(w, err)
		return
	}

	orders := make([]*orderResponse, 0, len(result.Orders))
	for _, dto := range result.Orders {
		orders = append(orders, toOrderResponse(dto))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"orders":      orders,
		"total_count": result.TotalCount,
	})
}

// Get handles GET /api/v1/orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	dto, err := h.get.Execute(r.Context(), &get_order.Request{OrderID: chi.URLParam(r, "id")})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toOrderResponse(dto))
}

// Create handles POST /api/v1/orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CustomerName  string             `json:"customer_name"`
		CustomerPhone string             `json:"customer_phone"`
		Items         []orderItemPayload `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	items, err := parseItems(body.Items)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_price", "item unit_price must be a decimal number")
		return
	}

	orderID, err := h.create.Execute(r.Context(), &create_order.Request{
		CustomerName:  body.CustomerName,
		CustomerPhone: body.CustomerPhone,
		Items:         items,
	})
	if err != nil {
		h.logger.Error("create order failed", zap.Error(err))
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"order_id": orderID})
}

// Update handles PATCH /api/v1/orders/{id}. Absent fields are left
// unchanged; status may be set to any valid value directly.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CustomerName  *string            `json:"customer_name"`
		CustomerPhone *string            `json:"customer_phone"`
		Items         []orderItemPayload `json:"items"`
		Status        *string            `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	req := &update_order.Request{
		OrderID:       chi.URLParam(r, "id"),
		CustomerName:  body.CustomerName,
		CustomerPhone: body.CustomerPhone,
	}

	if body.Items != nil {
		items, err := parseItems(body.Items)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_price", "item unit_price must be a decimal number")
			return
		}
		req.Items = items
	}

	if body.Status != nil {
		status := domain.OrderStatus(*body.Status)
		req.Status = &status
	}

	if err := h.update.Execute(r.Context(), req); err != nil {
		h.logger.Error("update order failed", zap.String("order_id", req.OrderID), zap.Error(err))
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"order_id": req.OrderID})
}

// Delete handles DELETE /api/v1/orders/{id}.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	if err := h.delete.Execute(r.Context(), &delete_order.Request{OrderID: orderID}); err != nil {
		h.logger.Error("delete order failed", zap.String("order_id", orderID), zap.Error(err))
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
