package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/bijoux-service/internal/pkg/clock"
	"github.com/light-bringer/bijoux-service/internal/pkg/money"
)

func TestNewProduct(t *testing.T) {
	price := money.MustParse("12.50")
	now := time.Now()
	clk := clock.NewMockClock(now)

	t.Run("valid product creation", func(t *testing.T) {
		p, err := NewProduct("id-1", "Collier Perle", "Collier en perles fines", "Colliers", price, 10, now, clk)
		require.NoError(t, err)
		assert.Equal(t, "id-1", p.ID())
		assert.Equal(t, "Collier Perle", p.Name())
		assert.Equal(t, StatusActive, p.Status())
		assert.Equal(t, int64(10), p.Stock())
		assert.True(t, p.Changes().HasChanges())
		assert.Len(t, p.DomainEvents(), 1)
	})

	t.Run("empty name returns error", func(t *testing.T) {
		_, err := NewProduct("id-1", "", "Desc", "Colliers", price, 10, now, clk)
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("empty description returns error", func(t *testing.T) {
		_, err := NewProduct("id-1", "Collier", "", "Colliers", price, 10, now, clk)
		assert.ErrorIs(t, err, ErrEmptyDescription)
	})

	t.Run("empty category returns error", func(t *testing.T) {
		_, err := NewProduct("id-1", "Collier", "Desc", "", price, 10, now, clk)
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("zero price returns error", func(t *testing.T) {
		_, err := NewProduct("id-1", "Collier", "Desc", "Colliers", money.Zero(), 10, now, clk)
		assert.ErrorIs(t, err, ErrPriceNotPositive)
	})

	t.Run("price above maximum returns error", func(t *testing.T) {
		_, err := NewProduct("id-1", "Collier", "Desc", "Colliers", money.MustParse("30.01"), 10, now, clk)
		assert.ErrorIs(t, err, ErrPriceExceedsMax)
	})

	t.Run("price of exactly the maximum is allowed", func(t *testing.T) {
		_, err := NewProduct("id-1", "Collier", "Desc", "Colliers", money.MustParse("30.00"), 10, now, clk)
		assert.NoError(t, err)
	})

	t.Run("negative stock returns error", func(t *testing.T) {
		_, err := NewProduct("id-1", "Collier", "Desc", "Colliers", price, -1, now, clk)
		assert.ErrorIs(t, err, ErrNegativeStock)
	})
}

func newTestProduct(t *testing.T, clk clock.Clock, now time.Time) *Product {
	t.Helper()
	p, err := NewProduct("id-1", "Collier Perle", "Collier en perles fines", "Colliers", money.MustParse("12.50"), 10, now, clk)
	require.NoError(t, err)
	return p
}

func TestProduct_SetStock(t *testing.T) {
	now := time.Now()
	clk := clock.NewMockClock(now)
	p := newTestProduct(t, clk, now)

	err := p.SetStock(3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.Stock())
	assert.True(t, p.Changes().Dirty(FieldStock))
	assert.True(t, p.IsLowStock())

	last := p.DomainEvents()[len(p.DomainEvents())-1]
	event, ok := last.(*StockChangedEvent)
	require.True(t, ok)
	assert.Equal(t, int64(10), event.OldStock)
	assert.Equal(t, int64(3), event.NewStock)

	assert.ErrorIs(t, p.SetStock(-1), ErrNegativeStock)
}

func TestProduct_SetPrice(t *testing.T) {
	now := time.Now()
	clk := clock.NewMockClock(now)
	p := newTestProduct(t, clk, now)

	require.NoError(t, p.SetPrice(money.MustParse("25.00")))
	assert.Equal(t, "25.00", p.Price().String())
	assert.True(t, p.Changes().Dirty(FieldPrice))

	assert.ErrorIs(t, p.SetPrice(money.MustParse("30.50")), ErrPriceExceedsMax)
	assert.ErrorIs(t, p.SetPrice(money.Zero()), ErrPriceNotPositive)
}

func TestProduct_SetDiscountPercent(t *testing.T) {
	now := time.Now()
	clk := clock.NewMockClock(now)
	p := newTestProduct(t, clk, now)

	require.NoError(t, p.SetDiscountPercent(20))
	assert.Equal(t, int64(20), p.DiscountPercent())
	assert.Equal(t, "10.00", p.EffectivePrice().String())

	require.NoError(t, p.SetDiscountPercent(0))
	assert.Equal(t, "12.50", p.EffectivePrice().String())

	assert.ErrorIs(t, p.SetDiscountPercent(101), ErrInvalidDiscountPercent)
	assert.ErrorIs(t, p.SetDiscountPercent(-1), ErrInvalidDiscountPercent)
}

func TestProduct_ActivateDeactivate(t *testing.T) {
	now := time.Now()
	clk := clock.NewMockClock(now)
	p := newTestProduct(t, clk, now)

	// New products start active
	assert.ErrorIs(t, p.Activate(now), ErrAlreadyActive)

	require.NoError(t, p.Deactivate(now))
	assert.Equal(t, StatusInactive, p.Status())
	assert.ErrorIs(t, p.Deactivate(now), ErrAlreadyInactive)

	require.NoError(t, p.Activate(now))
	assert.True(t, p.IsActive())
}

func TestProduct_Archive(t *testing.T) {
	now := time.Now()
	clk := clock.NewMockClock(now)
	p := newTestProduct(t, clk, now)

	require.NoError(t, p.Archive(now))
	assert.Equal(t, StatusArchived, p.Status())
	require.NotNil(t, p.ArchivedAt())
	assert.Equal(t, now, *p.ArchivedAt())

	assert.ErrorIs(t, p.Archive(now), ErrAlreadyArchived)
	assert.ErrorIs(t, p.SetName("x"), ErrCannotModifyArchived)
	assert.ErrorIs(t, p.SetStock(1), ErrCannotModifyArchived)
	assert.ErrorIs(t, p.SetPrice(money.MustParse("5")), ErrCannotModifyArchived)
}

func TestProduct_SetImages(t *testing.T) {
	now := time.Now()
	clk := clock.NewMockClock(now)
	p := newTestProduct(t, clk, now)

	require.NoError(t, p.SetImages("https://img/main.webp", ""))
	assert.Equal(t, "https://img/main.webp", p.ImageURL())
	assert.Empty(t, p.HoverImageURL())

	assert.ErrorIs(t, p.SetImages("", "https://img/hover.webp"), ErrMissingMainImage)
}

func TestReconstructProduct_StartsClean(t *testing.T) {
	now := time.Now()
	clk := clock.NewMockClock(now)

	p := ReconstructProduct(
		"id-1", "Bague Or", "Bague plaquee or", "Bagues",
		money.MustParse("15.00"), 4, 10, true, false,
		"https://img/main.webp", "",
		StatusActive, now, now, nil, clk,
	)

	assert.False(t, p.Changes().HasChanges())
	assert.Empty(t, p.DomainEvents())
	assert.True(t, p.IsLowStock())
	assert.Equal(t, "13.50", p.EffectivePrice().String())
}
