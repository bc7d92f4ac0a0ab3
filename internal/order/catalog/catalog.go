package catalog

import (
	"context"
	"errors"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrUnavailable     = errors.New("catalog unavailable")
)

// Entry is the product view the order service needs: identity, price and
// availability. The catalog owns these records; this side only reads them.
type Entry struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	InStock     bool    `json:"in_stock"`
}

// Reader looks up a single product. Implementations may serve from a local
// store or call the product service; callers see one synchronous lookup
// that can fail with ErrProductNotFound or ErrUnavailable.
type Reader interface {
	Lookup(ctx context.Context, productID int64) (*Entry, error)
}
