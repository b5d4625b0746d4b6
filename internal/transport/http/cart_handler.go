package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/light-bringer/bijoux-service/internal/app/cart/domain"
	"github.com/light-bringer/bijoux-service/internal/app/cart/service"
)

type cartAPI interface {
	Get(ctx context.Context, sessionID string) (domain.State, error)
	AddItem(ctx context.Context, sessionID, productID string) (domain.State, error)
	SetItemQuantity(ctx context.Context, sessionID, productID string, quantity int64) (domain.State, error)
	RemoveItem(ctx context.Context, sessionID, productID string) (domain.State, error)
	Clear(ctx context.Context, sessionID string) error
	Checkout(ctx context.Context, sessionID string) (*service.CheckoutResult, error)
}

// CartHandler serves the per-session cart endpoints.
type CartHandler struct {
	cart   cartAPI
	logger *zap.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cart cartAPI, logger *zap.Logger) *CartHandler {
	return &CartHandler{cart: cart, logger: logger}
}

type cartItemResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int64  `json:"quantity"`
	Subtotal  string `json:"subtotal"`
	Category  string `json:"category"`
	ImageRef  string `json:"image_ref,omitempty"`
}

type cartResponse struct {
	Items []cartItemResponse `json:"items"`
	Total string             `json:"total"`
	Count int64              `json:"count"`
}

func toCartResponse(state domain.State) *cartResponse {
	items := make([]cartItemResponse, 0, len(state))
	for _, item := range state {
		items = append(items, cartItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice.String(),
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal().String(),
			Category:  item.Category,
			ImageRef:  item.ImageRef,
		})
	}

	return &cartResponse{
		Items: items,
		Total: domain.Total(state).String(),
		Count: domain.Count(state),
	}
}

// Get handles GET /api/v1/cart/{sessionID}.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	state, err := h.cart.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.logger.Error("load cart failed", zap.Error(err))
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartResponse(state))
}

// AddItem handles POST /api/v1/cart/{sessionID}/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID string `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if body.ProductID == "" {
		respondError(w, http.StatusBadRequest, "missing_product_id", "product_id is required")
		return
	}

	state, err := h.cart.AddItem(r.Context(), chi.URLParam(r, "sessionID"), body.ProductID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartResponse(state))
}

// SetQuantity handles PUT /api/v1/cart/{sessionID}/items/{productID}.
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Quantity int64 `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	state, err := h.cart.SetItemQuantity(r.Context(), chi.URLParam(r, "sessionID"), chi.URLParam(r, "productID"), body.Quantity)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartResponse(state))
}

// RemoveItem handles DELETE /api/v1/cart/{sessionID}/items/{productID}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	state, err := h.cart.RemoveItem(r.Context(), chi.URLParam(r, "sessionID"), chi.URLParam(r, "productID"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartResponse(state))
}

// Clear handles DELETE /api/v1/cart/{sessionID}.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Clear(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Checkout handles POST /api/v1/cart/{sessionID}/checkout. The cart is
// cleared as part of the call; the client opens one of the returned
// links to hand the order to the shop.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	result, err := h.cart.Checkout(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message":       result.Message,
		"whatsapp_link": result.WhatsAppLink,
		"sms_link":      result.SMSLink,
	})
}
