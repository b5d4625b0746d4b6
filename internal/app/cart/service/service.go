package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	catalogcontracts "github.com/light-bringer/bijoux-service/internal/app/catalog/contracts"
	"github.com/light-bringer/bijoux-service/internal/app/cart/domain"
	"github.com/light-bringer/bijoux-service/internal/app/cart/message"
	"github.com/light-bringer/bijoux-service/internal/app/cart/store"
)

// ErrEmptyCart is returned when checkout is attempted on an empty cart.
var ErrEmptyCart = errors.New("cart is empty")

// Config holds the storefront parameters baked into checkout links.
type Config struct {
	SiteOrigin     string
	WhatsAppNumber string
}

// Service orchestrates cart mutations: every operation loads the
// session's full state, applies one reducer and saves the result back.
// Product details are snapshotted from the catalog at add time.
type Service struct {
	store   store.Store
	catalog catalogcontracts.ReadModel
	cfg     Config
	sfg     singleflight.Group // prevents load stampede per session
	logger  *zap.Logger
}

// NewService creates a new cart Service.
func NewService(store store.Store, catalog catalogcontracts.ReadModel, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		store:   store,
		catalog: catalog,
		cfg:     cfg,
		logger:  logger,
	}
}

// Get returns the session's cart. Concurrent loads for the same
// session collapse into one store read.
func (s *Service) Get(ctx context.Context, sessionID string) (domain.State, error) {
	v, err, _ := s.sfg.Do(sessionID, func() (interface{}, error) {
		return s.store.Load(ctx, sessionID)
	})
	if err != nil {
		return nil, err
	}
	return v.(domain.State), nil
}

// AddItem snapshots the product from the catalog and adds it to the
// cart. The effective (discounted) price is captured; later catalog
// changes never touch the line item.
func (s *Service) AddItem(ctx context.Context, sessionID, productID string) (domain.State, error) {
	product, err := s.catalog.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	snap := domain.ItemSnapshot{
		ProductID: product.ProductID,
		Name:      product.Name,
		UnitPrice: product.EffectivePrice,
		Category:  product.Category,
		ImageRef:  product.ImageURL,
	}

	return s.mutate(ctx, sessionID, func(state domain.State) domain.State {
		return domain.Add(state, snap)
	})
}

// SetItemQuantity replaces the quantity of a line item. A quantity
// below 1 removes the item.
func (s *Service) SetItemQuantity(ctx context.Context, sessionID, productID string, quantity int64) (domain.State, error) {
	return s.mutate(ctx, sessionID, func(state domain.State) domain.State {
		return domain.SetQuantity(state, productID, quantity)
	})
}

// RemoveItem removes a line item from the cart.
func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) (domain.State, error) {
	return s.mutate(ctx, sessionID, func(state domain.State) domain.State {
		return domain.Remove(state, productID)
	})
}

// Clear empties the session's cart.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

// CheckoutResult carries the rendered order message and the deep links
// handed to the buyer.
type CheckoutResult struct {
	Message      string
	WhatsAppLink string
	SMSLink      string
}

// Checkout renders the order message for the session's cart, clears
// the cart and returns the WhatsApp and SMS links. The clear is not
// conditioned on the message actually reaching the shop; an abandoned
// handoff loses the cart contents. Known data-loss risk carried from
// the storefront's behavior.
func (s *Service) Checkout(ctx context.Context, sessionID string) (*CheckoutResult, error) {
	state, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if len(state) == 0 {
		return nil, ErrEmptyCart
	}

	msg := message.FormatOrderMessage(state, s.cfg.SiteOrigin)
	encoded := message.Encode(msg)

	if err := s.store.Delete(ctx, sessionID); err != nil {
		s.logger.Warn("failed to clear cart after checkout",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}

	return &CheckoutResult{
		Message:      msg,
		WhatsAppLink: message.WhatsAppLink(encoded, s.cfg.WhatsAppNumber),
		SMSLink:      message.SMSLink(encoded, s.cfg.WhatsAppNumber),
	}, nil
}

func (s *Service) mutate(ctx context.Context, sessionID string, reduce func(domain.State) domain.State) (domain.State, error) {
	state, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	next := reduce(state)

	if err := s.store.Save(ctx, sessionID, next); err != nil {
		return nil, err
	}

	return next, nil
}
