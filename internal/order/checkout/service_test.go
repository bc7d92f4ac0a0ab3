package checkout

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yemyy27/perfume-store-platform/internal/order/cart"
	"github.com/yemyy27/perfume-store-platform/internal/order/catalog"
	"github.com/yemyy27/perfume-store-platform/internal/order/domain"
	"github.com/yemyy27/perfume-store-platform/internal/order/events"
	"github.com/yemyy27/perfume-store-platform/internal/order/orders"
)

type catalogStub struct {
	mu      sync.Mutex
	entries map[int64]*catalog.Entry
	err     error
}

func (c *catalogStub) Lookup(_ context.Context, productID int64) (*catalog.Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	entry, ok := c.entries[productID]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return entry, nil
}

type capturePublisher struct {
	mu     sync.Mutex
	events []*events.OrderCreatedEvent
	err    error
}

func (p *capturePublisher) PublishOrderCreated(_ context.Context, event *events.OrderCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

type fixture struct {
	carts     *cart.MemoryRepository
	orders    *orders.MemoryRepository
	catalog   *catalogStub
	publisher *capturePublisher
	svc       *Service
}

func newFixture() *fixture {
	f := &fixture{
		carts:  cart.NewMemoryRepository(),
		orders: orders.NewMemoryRepository(),
		catalog: &catalogStub{entries: map[int64]*catalog.Entry{
			1: {ID: 1, Name: "Midnight Rose", Price: 10.0, InStock: true},
			2: {ID: 2, Name: "Ocean Breeze", Price: 5.0, InStock: true},
		}},
		publisher: &capturePublisher{},
	}
	f.svc = NewService(f.carts, f.orders, f.catalog, NewMemoryLocker(), f.publisher, zap.NewNop())
	return f
}

func (f *fixture) fillCart(t *testing.T, userEmail string) {
	t.Helper()
	require.NoError(t, f.carts.AddItem(context.Background(), userEmail, domain.CartItem{ProductID: 1, Quantity: 2}))
	require.NoError(t, f.carts.AddItem(context.Background(), userEmail, domain.CartItem{ProductID: 2, Quantity: 1}))
}

func TestCheckout_MaterializesOrder(t *testing.T) {
	f := newFixture()
	f.fillCart(t, "alice@example.com")

	order, err := f.svc.Checkout(context.Background(), "alice@example.com")
	require.NoError(t, err)

	assert.NotZero(t, order.ID)
	assert.Equal(t, "alice@example.com", order.UserEmail)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, 25.0, order.Total)

	require.Len(t, order.Items, 2)
	assert.Equal(t, domain.OrderItem{ProductID: 1, ProductName: "Midnight Rose", Quantity: 2, Price: 10.0, Subtotal: 20.0}, order.Items[0])
	assert.Equal(t, domain.OrderItem{ProductID: 2, ProductName: "Ocean Breeze", Quantity: 1, Price: 5.0, Subtotal: 5.0}, order.Items[1])

	// The order is persisted, not just returned.
	stored, err := f.orders.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Total, stored.Total)
}

func TestCheckout_EmptiesCart(t *testing.T) {
	f := newFixture()
	f.fillCart(t, "alice@example.com")

	_, err := f.svc.Checkout(context.Background(), "alice@example.com")
	require.NoError(t, err)

	_, err = f.carts.GetCart(context.Background(), "alice@example.com")
	assert.ErrorIs(t, err, cart.ErrCartNotFound)
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Checkout(context.Background(), "alice@example.com")
	assert.ErrorIs(t, err, ErrEmptyCart)

	listed, err := f.orders.ListByUser(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestCheckout_OutOfStockLineAborts(t *testing.T) {
	f := newFixture()
	f.fillCart(t, "alice@example.com")
	f.catalog.entries[2].InStock = false

	_, err := f.svc.Checkout(context.Background(), "alice@example.com")
	assert.ErrorIs(t, err, cart.ErrOutOfStock)

	// No order, cart intact, no event.
	listed, err := f.orders.ListByUser(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Empty(t, listed)

	c, err := f.carts.GetCart(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Len(t, c.Items, 2)
	assert.Empty(t, f.publisher.events)
}

func TestCheckout_RemovedProductAborts(t *testing.T) {
	f := newFixture()
	f.fillCart(t, "alice@example.com")
	delete(f.catalog.entries, 1)

	_, err := f.svc.Checkout(context.Background(), "alice@example.com")
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)

	c, err := f.carts.GetCart(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Len(t, c.Items, 2)
}

func TestCheckout_CatalogUnavailableAborts(t *testing.T) {
	f := newFixture()
	f.fillCart(t, "alice@example.com")
	f.catalog.err = catalog.ErrUnavailable

	_, err := f.svc.Checkout(context.Background(), "alice@example.com")
	assert.ErrorIs(t, err, catalog.ErrUnavailable)

	c, err := f.carts.GetCart(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Len(t, c.Items, 2)
}

func TestCheckout_PublishesOrderCreated(t *testing.T) {
	f := newFixture()
	f.fillCart(t, "alice@example.com")

	order, err := f.svc.Checkout(context.Background(), "alice@example.com")
	require.NoError(t, err)

	require.Len(t, f.publisher.events, 1)
	event := f.publisher.events[0]
	assert.Equal(t, order.ID, event.OrderID)
	assert.Equal(t, "alice@example.com", event.UserEmail)
	assert.Equal(t, 25.0, event.Total)
	assert.Len(t, event.Items, 2)
	assert.NotEmpty(t, event.EventID)
}

func TestCheckout_PublishFailureDoesNotFailCheckout(t *testing.T) {
	f := newFixture()
	f.fillCart(t, "alice@example.com")
	f.publisher.err = assert.AnError

	order, err := f.svc.Checkout(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
}

func TestCheckout_SerializedPerPrincipal(t *testing.T) {
	f := newFixture()
	f.fillCart(t, "alice@example.com")

	locker := NewMemoryLocker()
	f.svc = NewService(f.carts, f.orders, f.catalog, locker, f.publisher, zap.NewNop())

	release, err := locker.Acquire(context.Background(), "alice@example.com")
	require.NoError(t, err)

	_, err = f.svc.Checkout(context.Background(), "alice@example.com")
	assert.ErrorIs(t, err, ErrCheckoutInProgress)

	release()

	_, err = f.svc.Checkout(context.Background(), "alice@example.com")
	require.NoError(t, err)
}

func TestCheckout_OtherPrincipalNotBlocked(t *testing.T) {
	f := newFixture()
	f.fillCart(t, "bob@example.com")

	locker := NewMemoryLocker()
	f.svc = NewService(f.carts, f.orders, f.catalog, locker, f.publisher, zap.NewNop())

	release, err := locker.Acquire(context.Background(), "alice@example.com")
	require.NoError(t, err)
	defer release()

	_, err = f.svc.Checkout(context.Background(), "bob@example.com")
	require.NoError(t, err)
}
