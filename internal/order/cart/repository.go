package cart

import (
	"context"
	"errors"

	"github.com/yemyy27/perfume-store-platform/internal/order/domain"
)

var ErrCartNotFound = errors.New("cart not found")

// Repository defines the interface for cart persistence. Consumers define
// this interface, not the MongoDB implementation.
type Repository interface {
	// GetCart returns the principal's cart or ErrCartNotFound.
	GetCart(ctx context.Context, userEmail string) (*domain.Cart, error)

	// AddItem inserts the item, creating the cart if needed. If a line for
	// the same product already exists its quantity is incremented.
	AddItem(ctx context.Context, userEmail string, item domain.CartItem) error

	// DeleteCart removes the principal's cart. Returns ErrCartNotFound if
	// there was nothing to delete.
	DeleteCart(ctx context.Context, userEmail string) error
}
