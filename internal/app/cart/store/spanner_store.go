package store

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/bijoux-service/internal/app/cart/domain"
	"github.com/light-bringer/bijoux-service/internal/models/m_cart"
)

// SpannerStore persists cart snapshots as JSON documents in the carts
// table, one row per session.
type SpannerStore struct {
	client *spanner.Client
	model  *m_cart.Model
	logger *zap.Logger
}

// NewSpannerStore creates a new SpannerStore.
func NewSpannerStore(client *spanner.Client, logger *zap.Logger) *SpannerStore {
	return &SpannerStore{
		client: client,
		model:  m_cart.NewModel(),
		logger: logger,
	}
}

// Load returns the session's cart. A missing row or a snapshot that no
// longer decodes loads as the empty state, not an error.
func (s *SpannerStore) Load(ctx context.Context, sessionID string) (domain.State, error) {
	row, err := s.client.Single().ReadRow(ctx, m_cart.TableName, spanner.Key{sessionID}, []string{m_cart.Snapshot})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return domain.State{}, nil
		}
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	var snapshot spanner.NullJSON
	if err := row.Column(0, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse cart row: %w", err)
	}

	if !snapshot.Valid {
		return domain.State{}, nil
	}

	state, err := decodeSnapshot(snapshot)
	if err != nil {
		s.logger.Warn("discarding corrupt cart snapshot",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return domain.State{}, nil
	}

	return state, nil
}

// Save replaces the session's cart snapshot.
func (s *SpannerStore) Save(ctx context.Context, sessionID string, state domain.State) error {
	data := &m_cart.Data{
		SessionID: sessionID,
		Snapshot:  spanner.NullJSON{Value: state, Valid: true},
	}

	_, err := s.client.Apply(ctx, []*spanner.Mutation{s.model.UpsertMut(data)})
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Delete removes the session's cart.
func (s *SpannerStore) Delete(ctx context.Context, sessionID string) error {
	_, err := s.client.Apply(ctx, []*spanner.Mutation{s.model.DeleteMut(sessionID)})
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// decodeSnapshot turns the stored JSON document back into cart state.
// NullJSON decodes into generic values, so the document is re-marshaled
// and parsed against the typed line items.
func decodeSnapshot(snapshot spanner.NullJSON) (domain.State, error) {
	raw, err := json.Marshal(snapshot.Value)
	if err != nil {
		return nil, err
	}

	var state domain.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, err
	}

	for _, item := range state {
		if item.ProductID == "" || item.Quantity < 1 || item.UnitPrice == nil {
			return nil, fmt.Errorf("malformed line item in snapshot")
		}
	}

	return state, nil
}
