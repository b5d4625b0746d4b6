package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Handlers groups the endpoint handlers the router mounts.
type Handlers struct {
	Products *ProductHandler
	Cart     *CartHandler
	Orders   *OrderHandler
	Stats    *StatsHandler
}

// NewRouter wires the service routes behind the shared middleware
// stack.
func NewRouter(h Handlers, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "bijoux-service",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Products.List)
			r.Post("/", h.Products.Create)
			r.Post("/bulk", h.Products.BulkCreate)
			r.Get("/{id}", h.Products.Get)
			r.Patch("/{id}", h.Products.Update)
			r.Delete("/{id}", h.Products.Archive)
			r.Put("/{id}/stock", h.Products.SetStock)
		})

		r.Route("/cart/{sessionID}", func(r chi.Router) {
			r.Get("/", h.Cart.Get)
			r.Delete("/", h.Cart.Clear)
			r.Post("/items", h.Cart.AddItem)
			r.Put("/items/{productID}", h.Cart.SetQuantity)
			r.Delete("/items/{productID}", h.Cart.RemoveItem)
			r.Post("/checkout", h.Cart.Checkout)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.Orders.List)
			r.Post("/", h.Orders.Create)
			r.Get("/{id}", h.Orders.Get)
			r.Patch("/{id}", h.Orders.Update)
			r.Delete("/{id}", h.Orders.Delete)
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/revenue", h.Stats.Revenue)
			r.Get("/catalog", h.Stats.Catalog)
		})
	})

	return r
}
