package domain

import "time"

// Product represents an inventory item. Products are operator-managed and
// have no ownership dimension; customers read them when placing orders.
type Product struct {
	ID        string
	Name      string
	SKU       string
	Price     float64
	Stock     int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UpsertProductRequest holds parameters for creating or updating a product.
type UpsertProductRequest struct {
	Name  string  `json:"name"`
	SKU   string  `json:"sku"`
	Price float64 `json:"price"`
	Stock int64   `json:"stock"`
}

// Validate checks that the request is well-formed.
func (r *UpsertProductRequest) Validate() error {
	if r.Name == "" {
		return ErrValidation("name is required")
	}
	if r.SKU == "" {
		return ErrValidation("sku is required")
	}
	if r.Price < 0 {
		return ErrValidation("price must not be negative")
	}
	if r.Stock < 0 {
		return ErrValidation("stock must not be negative")
	}
	return nil
}
