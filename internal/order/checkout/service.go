package checkout

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yemyy27/perfume-store-platform/internal/order/cart"
	"github.com/yemyy27/perfume-store-platform/internal/order/catalog"
	"github.com/yemyy27/perfume-store-platform/internal/order/domain"
	"github.com/yemyy27/perfume-store-platform/internal/order/events"
	"github.com/yemyy27/perfume-store-platform/internal/order/orders"
)

var ErrEmptyCart = errors.New("cart is empty")

// Service turns a cart into an order: it revalidates every line against
// the live catalog, snapshots names and prices, persists the order and
// empties the cart. Checkouts are serialized per principal.
type Service struct {
	carts   cart.Repository
	orders  orders.Repository
	catalog catalog.Reader
	locker  Locker
	events  events.Publisher
	logger  *zap.Logger
}

func NewService(
	carts cart.Repository,
	orderRepo orders.Repository,
	reader catalog.Reader,
	locker Locker,
	publisher events.Publisher,
	logger *zap.Logger,
) *Service {
	return &Service{
		carts:   carts,
		orders:  orderRepo,
		catalog: reader,
		locker:  locker,
		events:  publisher,
		logger:  logger,
	}
}

// Checkout is all-or-nothing: any line that fails validation aborts the
// whole checkout and leaves the cart untouched.
func (s *Service) Checkout(ctx context.Context, userEmail string) (*domain.Order, error) {
	release, err := s.locker.Acquire(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	defer release()

	c, err := s.carts.GetCart(ctx, userEmail)
	if errors.Is(err, cart.ErrCartNotFound) {
		return nil, ErrEmptyCart
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}

	items, total, err := s.validateLines(ctx, c.Items)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		UserEmail: userEmail,
		Items:     items,
		Total:     total,
		Status:    domain.OrderStatusPending,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	// The order is committed; a failed cart delete leaves a stale cart
	// but must not fail the checkout.
	if err := s.carts.DeleteCart(ctx, userEmail); err != nil && !errors.Is(err, cart.ErrCartNotFound) {
		s.logger.Error("failed to clear cart after checkout",
			zap.String("user_email", userEmail),
			zap.Int64("order_id", order.ID),
			zap.Error(err))
	}

	if err := s.events.PublishOrderCreated(ctx, events.NewOrderCreated(order)); err != nil {
		s.logger.Error("failed to publish order created event",
			zap.Int64("order_id", order.ID),
			zap.Error(err))
	}

	s.logger.Info("order created",
		zap.Int64("order_id", order.ID),
		zap.String("user_email", userEmail),
		zap.Float64("total", order.Total))

	return order, nil
}

// validateLines looks up every cart line concurrently and builds the
// order item snapshots in cart insertion order.
func (s *Service) validateLines(ctx context.Context, lines []domain.CartItem) ([]domain.OrderItem, float64, error) {
	items := make([]domain.OrderItem, len(lines))

	g, gctx := errgroup.WithContext(ctx)
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			entry, err := s.catalog.Lookup(gctx, line.ProductID)
			if err != nil {
				return fmt.Errorf("product %d: %w", line.ProductID, err)
			}
			if !entry.InStock {
				return fmt.Errorf("product %d: %w", line.ProductID, cart.ErrOutOfStock)
			}
			items[i] = domain.OrderItem{
				ProductID:   line.ProductID,
				ProductName: entry.Name,
				Quantity:    line.Quantity,
				Price:       entry.Price,
				Subtotal:    entry.Price * float64(line.Quantity),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	var total float64
	for _, item := range items {
		total += item.Subtotal
	}
	return items, total, nil
}
