package upstream

import "context"

type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

type OrderRequest struct {
	Items []OrderItem `json:"items"`
	Notes string      `json:"notes,omitempty"`
}

type Order struct {
	ID          string      `json:"id"`
	OrderNumber string      `json:"orderNumber"`
	Status      string      `json:"status"`
	Items       []OrderItem `json:"items"`
	Total       float64     `json:"total"`
	Notes       string      `json:"notes,omitempty"`
	CreatedAt   string      `json:"createdAt"`
}

type orderListEnvelope struct {
	Orders []Order `json:"orders"`
}

// CreateOrder submits the cart's lines. Tax computation, numbering and stock
// decrement all happen on the backend.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	var order Order
	if err := c.post(ctx, "/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var envelope orderListEnvelope
	if err := c.get(ctx, "/orders", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Orders, nil
}

func (c *Client) GetOrder(ctx context.Context, id string) (*Order, error) {
	var order Order
	if err := c.get(ctx, "/orders/"+id, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) (*Order, error) {
	body := map[string]string{"status": status}
	var order Order
	if err := c.patch(ctx, "/orders/"+id+"/status", body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) ConvertOrderToInvoice(ctx context.Context, id string) (*Invoice, error) {
	var invoice Invoice
	if err := c.post(ctx, "/orders/"+id+"/convert-to-invoice", nil, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	return c.delete(ctx, "/orders/"+id)
}
