package orders

import (
	"context"
	"sync"
	"time"

	"github.com/yemyy27/perfume-store-platform/internal/order/domain"
)

// MemoryRepository implements Repository with in-memory storage. Used by
// tests and single-node deployments without Postgres.
type MemoryRepository struct {
	mu     sync.RWMutex
	orders map[int64]*domain.Order
	nextID int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		orders: make(map[int64]*domain.Order),
		nextID: 1,
	}
}

func (m *MemoryRepository) Create(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	order.ID = m.nextID
	m.nextID++
	order.CreatedAt = now
	order.UpdatedAt = now

	stored := cloneOrder(order)
	m.orders[order.ID] = stored
	return nil
}

func (m *MemoryRepository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	order, exists := m.orders[id]
	if !exists {
		return nil, ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

func (m *MemoryRepository) ListByUser(_ context.Context, userEmail string) ([]*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*domain.Order{}
	// IDs are assigned sequentially, so ascending id is creation order.
	for id := int64(1); id < m.nextID; id++ {
		order, exists := m.orders[id]
		if exists && order.UserEmail == userEmail {
			out = append(out, cloneOrder(order))
		}
	}
	return out, nil
}

func (m *MemoryRepository) SetStatus(_ context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, exists := m.orders[id]
	if !exists {
		return nil, ErrOrderNotFound
	}

	order.Status = status
	order.UpdatedAt = time.Now()
	return cloneOrder(order), nil
}

func (m *MemoryRepository) Close() error {
	return nil
}

func cloneOrder(order *domain.Order) *domain.Order {
	out := *order
	out.Items = make([]domain.OrderItem, len(order.Items))
	copy(out.Items, order.Items)
	return &out
}
