package domain

import "errors"

// Domain errors for order operations.
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrEmptyCustomerName  = errors.New("customer name cannot be empty")
	ErrEmptyCustomerPhone = errors.New("customer phone cannot be empty")
	ErrNoItems            = errors.New("order must have at least one item")
	ErrInvalidQuantity    = errors.New("order item quantity must be at least 1")
	ErrInvalidItemPrice   = errors.New("order item price must be positive")
	ErrInvalidStatus      = errors.New("invalid order status")
)
