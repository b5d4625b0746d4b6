package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/light-bringer/bijoux-service/internal/app/cart/domain"
)

// errCacheMiss marks a key absent from Redis.
var errCacheMiss = errors.New("cache miss")

// CachedStore fronts a Store with a Redis cache-aside layer. Cache
// failures never fail the request; the inner store stays the source of
// truth and every write invalidates the cached entry.
type CachedStore struct {
	inner   Store
	client  *redis.Client
	baseTTL time.Duration
	logger  *zap.Logger
}

// NewCachedStore creates a new CachedStore.
func NewCachedStore(inner Store, client *redis.Client, logger *zap.Logger) *CachedStore {
	return &CachedStore{
		inner:   inner,
		client:  client,
		baseTTL: 15 * time.Minute,
		logger:  logger,
	}
}

// Load returns the session's cart, from cache when possible.
func (c *CachedStore) Load(ctx context.Context, sessionID string) (domain.State, error) {
	state, err := c.cacheGet(ctx, sessionID)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, errCacheMiss) {
		c.logger.Warn("cart cache get failed", zap.String("session_id", sessionID), zap.Error(err))
	}

	state, err = c.inner.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := c.cacheSet(ctx, sessionID, state); err != nil {
		c.logger.Warn("cart cache set failed", zap.String("session_id", sessionID), zap.Error(err))
	}

	return state, nil
}

// Save writes through to the inner store and invalidates the cache.
func (c *CachedStore) Save(ctx context.Context, sessionID string, state domain.State) error {
	if err := c.inner.Save(ctx, sessionID, state); err != nil {
		return err
	}
	c.invalidate(ctx, sessionID)
	return nil
}

// Delete removes the session's cart and invalidates the cache.
func (c *CachedStore) Delete(ctx context.Context, sessionID string) error {
	if err := c.inner.Delete(ctx, sessionID); err != nil {
		return err
	}
	c.invalidate(ctx, sessionID)
	return nil
}

func (c *CachedStore) cacheGet(ctx context.Context, sessionID string) (domain.State, error) {
	data, err := c.client.Get(ctx, cacheKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var state domain.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal cached cart failed: %w", err)
	}
	return state, nil
}

func (c *CachedStore) cacheSet(ctx context.Context, sessionID string, state domain.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	// Jitter spreads expirations so a burst of sessions cached together
	// does not expire together
	jitter := time.Duration(rand.Intn(5)) * time.Minute
	if err := c.client.Set(ctx, cacheKey(sessionID), data, c.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *CachedStore) invalidate(ctx context.Context, sessionID string) {
	if err := c.client.Del(ctx, cacheKey(sessionID)).Err(); err != nil {
		c.logger.Warn("cart cache invalidation failed", zap.String("session_id", sessionID), zap.Error(err))
	}
}

func cacheKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}
