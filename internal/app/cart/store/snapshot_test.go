package store

import (
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/bijoux-service/internal/app/cart/domain"
	"github.com/light-bringer/bijoux-service/internal/pkg/money"
)

func TestDecodeSnapshot_RoundTrip(t *testing.T) {
	state := domain.State{
		{
			ProductID: "p1",
			Name:      "Collier perle",
			UnitPrice: money.MustParse("25.50"),
			Quantity:  2,
			Category:  "Colliers",
			ImageRef:  "https://cdn.example.com/products/p1_main.jpg",
		},
		{
			ProductID: "p2",
			Name:      "Bague argent",
			UnitPrice: money.MustParse("8.33"),
			Quantity:  1,
			Category:  "Bagues",
		},
	}

	decoded, err := decodeSnapshot(spanner.NullJSON{Value: state, Valid: true})

	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.Equal(t, "p1", decoded[0].ProductID)
	assert.Equal(t, int64(2), decoded[0].Quantity)
	assert.True(t, decoded[0].UnitPrice.Equals(money.MustParse("25.50")))
	assert.Equal(t, "p2", decoded[1].ProductID)
	assert.True(t, decoded[1].UnitPrice.Equals(money.MustParse("8.33")))
	assert.Equal(t, state, decoded)
}

func TestDecodeSnapshot_PriceFidelity(t *testing.T) {
	// a third of a dollar survives the round trip exactly
	third, err := money.MustParse("1").DivideInt(3)
	require.NoError(t, err)

	state := domain.State{{ProductID: "p1", Name: "x", UnitPrice: third, Quantity: 3}}

	decoded, err := decodeSnapshot(spanner.NullJSON{Value: state, Valid: true})

	require.NoError(t, err)
	assert.True(t, decoded[0].UnitPrice.Equals(third))
	assert.Equal(t, "1.00", domain.Total(decoded).String())
}

func TestDecodeSnapshot_MalformedDocument(t *testing.T) {
	_, err := decodeSnapshot(spanner.NullJSON{Value: "not a cart", Valid: true})
	assert.Error(t, err)
}

func TestDecodeSnapshot_MalformedLineItem(t *testing.T) {
	cases := []map[string]interface{}{
		{"product_id": "", "quantity": 1, "unit_price": "1/1"},
		{"product_id": "p1", "quantity": 0, "unit_price": "1/1"},
		{"product_id": "p1", "quantity": 1},
	}

	for _, item := range cases {
		_, err := decodeSnapshot(spanner.NullJSON{Value: []interface{}{item}, Valid: true})
		assert.Error(t, err)
	}
}
