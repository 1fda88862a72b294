package models

type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Description *string  `json:"description"`
	Stock       int      `json:"stock" binding:"gte=0"`
}

// UpdateProductRequest applies only the fields present in the request;
// nil fields leave the stored value untouched.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Description *string  `json:"description"`
	Stock       *int     `json:"stock" binding:"omitempty,gte=0"`
}

type SetCartQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}
