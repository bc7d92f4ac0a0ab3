package cart

import (
	"context"
	"sync"
	"time"

	"github.com/yemyy27/perfume-store-platform/internal/order/domain"
)

// MemoryRepository implements Repository with in-memory storage. Used by
// tests and single-node deployments without MongoDB.
type MemoryRepository struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		carts: make(map[string]*domain.Cart),
	}
}

func (m *MemoryRepository) GetCart(_ context.Context, userEmail string) (*domain.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cart, exists := m.carts[userEmail]
	if !exists {
		return nil, ErrCartNotFound
	}

	out := *cart
	out.Items = make([]domain.CartItem, len(cart.Items))
	copy(out.Items, cart.Items)
	return &out, nil
}

func (m *MemoryRepository) AddItem(_ context.Context, userEmail string, item domain.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	item.AddedAt = now

	cart, exists := m.carts[userEmail]
	if !exists {
		m.carts[userEmail] = &domain.Cart{
			UserEmail: userEmail,
			Items:     []domain.CartItem{item},
			CreatedAt: now,
			UpdatedAt: now,
		}
		return nil
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID == item.ProductID {
			cart.Items[i].Quantity += item.Quantity
			cart.Items[i].AddedAt = now
			cart.UpdatedAt = now
			return nil
		}
	}

	cart.Items = append(cart.Items, item)
	cart.UpdatedAt = now
	return nil
}

func (m *MemoryRepository) DeleteCart(_ context.Context, userEmail string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.carts[userEmail]; !exists {
		return ErrCartNotFound
	}

	delete(m.carts, userEmail)
	return nil
}
