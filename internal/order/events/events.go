package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/yemyy27/perfume-store-platform/internal/order/domain"
)

// OrderCreatedEvent is emitted after an order is materialized. Consumers
// get a full snapshot of the order, not a reference to look up.
type OrderCreatedEvent struct {
	EventID   uuid.UUID          `json:"event_id"`
	OrderID   int64              `json:"order_id"`
	UserEmail string             `json:"user_email"`
	Items     []domain.OrderItem `json:"items"`
	Total     float64            `json:"total"`
	Status    domain.OrderStatus `json:"status"`
	Timestamp time.Time          `json:"timestamp"`
}

func NewOrderCreated(order *domain.Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		EventID:   uuid.New(),
		OrderID:   order.ID,
		UserEmail: order.UserEmail,
		Items:     order.Items,
		Total:     order.Total,
		Status:    order.Status,
		Timestamp: time.Now().UTC(),
	}
}
