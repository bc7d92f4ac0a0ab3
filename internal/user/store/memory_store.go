package store

import (
	"context"
	"sync"
	"time"

	"github.com/yemyy27/perfume-store-platform/internal/user/domain"
)

// MemoryStore implements UserStore with in-memory storage.
type MemoryStore struct {
	mu      sync.RWMutex
	byEmail map[string]*domain.User
	ordered []*domain.User
	nextID  int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byEmail: make(map[string]*domain.User),
		nextID:  1,
	}
}

func (s *MemoryStore) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[user.Email]; exists {
		return nil, ErrEmailTaken
	}

	stored := *user
	stored.ID = s.nextID
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	s.nextID++

	s.byEmail[stored.Email] = &stored
	s.ordered = append(s.ordered, &stored)

	out := stored
	return &out, nil
}

func (s *MemoryStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.byEmail[email]
	if !exists {
		return nil, ErrUserNotFound
	}

	out := *user
	return &out, nil
}

func (s *MemoryStore) List(_ context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.User, 0, len(s.ordered))
	for _, u := range s.ordered {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}
