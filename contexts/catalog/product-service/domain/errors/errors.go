package errors

import "errors"

var (
	ErrProductNotFound        = errors.New("product not found")
	ErrProductAlreadyExists   = errors.New("product already exists")
	ErrInvalidProductID       = errors.New("invalid product id")
	ErrNameRequired           = errors.New("name is required")
	ErrPriceRequired          = errors.New("price is required")
	ErrInvalidPrice           = errors.New("price must be a non-negative number")
	ErrInvalidQuantity        = errors.New("quantity must be a non-negative integer")
	ErrInvalidProductStatus   = errors.New("status must be one of active, deleted")
	ErrSearchQueryRequired    = errors.New("search query is required")
	ErrIdempotencyKeyConflict = errors.New("idempotency key reused with different request")
)
