package domain

import "time"

// Cart holds one principal's pending items. Items carry no prices; totals
// are always recomputed against the live catalog.
type Cart struct {
	ID        string     `bson:"_id,omitempty" json:"-"`
	UserEmail string     `bson:"user_email" json:"user_email"`
	Items     []CartItem `bson:"items" json:"items"`
	CreatedAt time.Time  `bson:"created_at" json:"-"`
	UpdatedAt time.Time  `bson:"updated_at" json:"-"`
}

type CartItem struct {
	ProductID int64     `bson:"product_id" json:"product_id"`
	Quantity  int       `bson:"quantity" json:"quantity"`
	AddedAt   time.Time `bson:"added_at" json:"-"`
}

// CartView is the API representation of a cart: its lines plus the total
// computed from current catalog prices.
type CartView struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}
