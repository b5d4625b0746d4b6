package domain

import "errors"

// Domain errors as sentinel values
var (
	// Product errors
	ErrProductNotFound  = errors.New("product not found")
	ErrEmptyName        = errors.New("product name cannot be empty")
	ErrEmptyDescription = errors.New("product description cannot be empty")
	ErrInvalidCategory  = errors.New("product category cannot be empty")
	ErrPriceNotPositive = errors.New("product price must be positive")
	ErrPriceExceedsMax  = errors.New("product price cannot exceed 30.00")
	ErrNegativeStock    = errors.New("product stock cannot be negative")
	ErrMissingMainImage = errors.New("product main image is required")

	// Discount errors
	ErrInvalidDiscountPercent = errors.New("discount percentage must be between 0 and 100")

	// Status errors
	ErrAlreadyActive        = errors.New("product is already active")
	ErrAlreadyInactive      = errors.New("product is already inactive")
	ErrAlreadyArchived      = errors.New("product is already archived")
	ErrCannotModifyArchived = errors.New("cannot modify archived product")
)
