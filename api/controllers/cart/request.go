package cart

type addItemRequest struct {
	ProductID  string `json:"productId" validate:"required"`
	CustomerID string `json:"customerId"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type checkoutRequest struct {
	Notes string `json:"notes" validate:"max=500"`
}
