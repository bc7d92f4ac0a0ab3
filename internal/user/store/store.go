package store

import (
	"context"
	"errors"

	"github.com/yemyy27/perfume-store-platform/internal/user/domain"
)

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	// Create inserts the user, assigning its ID. Fails with ErrEmailTaken
	// if the email is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// GetByEmail returns the user for the given email or ErrUserNotFound.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns all users in registration order.
	List(ctx context.Context) ([]*domain.User, error)
}
