package models

import "time"

// CartItem holds a quantity of stock reserved for a single product.
// At most one row exists per product; Product is filled on joined reads.
type CartItem struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	Product   *Product  `json:"product,omitempty"`
}
