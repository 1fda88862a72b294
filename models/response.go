package models

type ErrorResponse struct {
	Message string `json:"message"`
}

// RemovedResponse reports a cart item deleted because its quantity
// reached zero or it was removed explicitly.
type RemovedResponse struct {
	Status    string `json:"status"`
	ProductID int64  `json:"product_id"`
}
