package domain

import (
	"github.com/light-bringer/bijoux-service/internal/pkg/money"
)

// LineItem is one product entry in a cart. Name, price, category and
// image are copied from the catalog at add time and never refreshed,
// so the buyer sees exactly what they put in the cart.
type LineItem struct {
	ProductID string       `json:"product_id"`
	Name      string       `json:"name"`
	UnitPrice *money.Money `json:"unit_price"`
	Quantity  int64        `json:"quantity"`
	Category  string       `json:"category"`
	ImageRef  string       `json:"image_ref"`
}

// Subtotal returns unit price times quantity.
func (li LineItem) Subtotal() *money.Money {
	return li.UnitPrice.MultiplyInt(li.Quantity)
}

// State is the full cart contents, one entry per product, in insertion
// order. Every item holds Quantity >= 1; reaching zero removes it.
type State []LineItem

// ItemSnapshot carries the catalog fields captured when a product is
// added to a cart.
type ItemSnapshot struct {
	ProductID string
	Name      string
	UnitPrice *money.Money
	Category  string
	ImageRef  string
}

// Add returns a new state with the snapshot added. If the product is
// already in the cart its quantity is incremented; otherwise the item
// is appended with quantity 1. The input state is never modified.
func Add(state State, snap ItemSnapshot) State {
	next := make(State, 0, len(state)+1)
	found := false

	for _, item := range state {
		if item.ProductID == snap.ProductID {
			item.Quantity++
			found = true
		}
		next = append(next, item)
	}

	if !found {
		next = append(next, LineItem{
			ProductID: snap.ProductID,
			Name:      snap.Name,
			UnitPrice: snap.UnitPrice.Copy(),
			Quantity:  1,
			Category:  snap.Category,
			ImageRef:  snap.ImageRef,
		})
	}

	return next
}

// Remove returns a new state without the given product. Removing an
// absent product is a no-op.
func Remove(state State, productID string) State {
	next := make(State, 0, len(state))
	for _, item := range state {
		if item.ProductID == productID {
			continue
		}
		next = append(next, item)
	}
	return next
}

// SetQuantity returns a new state with the product's quantity replaced.
// A quantity below 1 removes the item. Setting quantity on an absent
// product is a no-op.
func SetQuantity(state State, productID string, quantity int64) State {
	if quantity < 1 {
		return Remove(state, productID)
	}

	next := make(State, 0, len(state))
	for _, item := range state {
		if item.ProductID == productID {
			item.Quantity = quantity
		}
		next = append(next, item)
	}
	return next
}

// Clear returns the empty state.
func Clear(State) State {
	return State{}
}

// Total sums unit price times quantity over all items. The result is
// computed fresh on every call.
func Total(state State) *money.Money {
	total := money.Zero()
	for _, item := range state {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Count sums the quantities of all items. This is the badge number,
// not the number of distinct products.
func Count(state State) int64 {
	var count int64
	for _, item := range state {
		count += item.Quantity
	}
	return count
}
