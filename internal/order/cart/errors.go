package cart

import "errors"

var (
	ErrOutOfStock      = errors.New("product out of stock")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)
