package domain

import "time"

// Order statuses.
const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderShipped   = "shipped"
	OrderCancelled = "cancelled"
)

// Order represents a customer purchase. OwnerID is immutable after creation
// and always references an existing customer principal.
type Order struct {
	ID        string
	OwnerID   string
	ProductID string
	Quantity  int64
	Total     float64
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderPaid, OrderShipped, OrderCancelled:
		return true
	}
	return false
}

// CreateOrderRequest holds parameters for placing a new order.
type CreateOrderRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// Validate checks that the request is well-formed.
func (r *CreateOrderRequest) Validate() error {
	if r.ProductID == "" {
		return ErrValidation("product_id is required")
	}
	if r.Quantity <= 0 {
		return ErrValidation("quantity must be positive")
	}
	return nil
}
