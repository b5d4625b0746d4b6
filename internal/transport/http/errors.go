package http

import (
	"errors"
	"net/http"

	cartservice "github.com/light-bringer/bijoux-service/internal/app/cart/service"
	catalogdomain "github.com/light-bringer/bijoux-service/internal/app/catalog/domain"
	orderdomain "github.com/light-bringer/bijoux-service/internal/app/order/domain"
)

// respondDomainError maps domain errors onto HTTP statuses. Anything
// unmapped is a 500 with a generic body; the real error goes to the
// log, not the client.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalogdomain.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "product_not_found", "product not found")
	case errors.Is(err, orderdomain.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "order_not_found", "order not found")

	case errors.Is(err, catalogdomain.ErrEmptyName),
		errors.Is(err, catalogdomain.ErrEmptyDescription),
		errors.Is(err, catalogdomain.ErrInvalidCategory),
		errors.Is(err, catalogdomain.ErrPriceNotPositive),
		errors.Is(err, catalogdomain.ErrPriceExceedsMax),
		errors.Is(err, catalogdomain.ErrNegativeStock),
		errors.Is(err, catalogdomain.ErrMissingMainImage),
		errors.Is(err, catalogdomain.ErrInvalidDiscountPercent),
		errors.Is(err, orderdomain.ErrEmptyCustomerName),
		errors.Is(err, orderdomain.ErrEmptyCustomerPhone),
		errors.Is(err, orderdomain.ErrNoItems),
		errors.Is(err, orderdomain.ErrInvalidQuantity),
		errors.Is(err, orderdomain.ErrInvalidItemPrice),
		errors.Is(err, orderdomain.ErrInvalidStatus):
		respondError(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())

	case errors.Is(err, catalogdomain.ErrCannotModifyArchived),
		errors.Is(err, catalogdomain.ErrAlreadyArchived):
		respondError(w, http.StatusConflict, "conflict", err.Error())

	case errors.Is(err, cartservice.ErrEmptyCart):
		respondError(w, http.StatusUnprocessableEntity, "empty_cart", "cart is empty")

	default:
		respondError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}
