package orders

import (
	"context"
	"errors"

	"github.com/yemyy27/perfume-store-platform/internal/order/domain"
)

var ErrOrderNotFound = errors.New("order not found")

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

type Repository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByUser(ctx context.Context, userEmail string) ([]*domain.Order, error)
	SetStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error)
	Close() error
}
