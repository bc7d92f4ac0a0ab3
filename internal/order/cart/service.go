package cart

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/yemyy27/perfume-store-platform/internal/order/catalog"
	"github.com/yemyy27/perfume-store-platform/internal/order/domain"
)

type Service struct {
	repo    Repository
	catalog catalog.Reader
	logger  *zap.Logger
	sfg     singleflight.Group // coalesces concurrent view recomputations per principal
}

func NewService(repo Repository, reader catalog.Reader, logger *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		catalog: reader,
		logger:  logger,
	}
}

// Add validates the product against the catalog (existence and stock),
// then inserts or increments the cart line and returns the refreshed view.
func (s *Service) Add(ctx context.Context, userEmail string, productID int64, quantity int) (*domain.CartView, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	entry, err := s.catalog.Lookup(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !entry.InStock {
		return nil, fmt.Errorf("product %d: %w", productID, ErrOutOfStock)
	}

	if err := s.repo.AddItem(ctx, userEmail, domain.CartItem{
		ProductID: productID,
		Quantity:  quantity,
	}); err != nil {
		return nil, fmt.Errorf("add cart item: %w", err)
	}

	return s.View(ctx, userEmail)
}

// View returns the cart lines with the total recomputed from current
// catalog prices. The cart never stores prices, so the total tracks the
// catalog; a line whose product cannot be resolved is still listed but
// contributes nothing to the total.
func (s *Service) View(ctx context.Context, userEmail string) (*domain.CartView, error) {
	v, err, _ := s.sfg.Do(userEmail, func() (interface{}, error) {
		cart, err := s.repo.GetCart(ctx, userEmail)
		if errors.Is(err, ErrCartNotFound) {
			return &domain.CartView{Items: []domain.CartItem{}}, nil
		}
		if err != nil {
			return nil, err
		}

		view := &domain.CartView{Items: cart.Items}
		if view.Items == nil {
			view.Items = []domain.CartItem{}
		}

		for _, item := range cart.Items {
			entry, lookupErr := s.catalog.Lookup(ctx, item.ProductID)
			if lookupErr != nil {
				s.logger.Warn("skipping price for unresolvable cart line",
					zap.String("user_email", userEmail),
					zap.Int64("product_id", item.ProductID),
					zap.Error(lookupErr))
				continue
			}
			view.Total += entry.Price * float64(item.Quantity)
		}

		return view, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*domain.CartView), nil
}

// Clear empties the principal's cart. Clearing an absent cart is not an
// error.
func (s *Service) Clear(ctx context.Context, userEmail string) error {
	err := s.repo.DeleteCart(ctx, userEmail)
	if err != nil && !errors.Is(err, ErrCartNotFound) {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
