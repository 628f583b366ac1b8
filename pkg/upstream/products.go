package upstream

import (
	"context"
	"fmt"
)

// Product is the catalog record as the backend reports it. Price carries the
// effective price for the requesting customer; OriginalPrice is the list
// price and HasCustomPrice tells the two apart. A customer price of zero with
// the flag set is a real override, absence is only ever the flag being false.
type Product struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Category       string   `json:"category,omitempty"`
	Unit           string   `json:"unit,omitempty"`
	Price          float64  `json:"price"`
	OriginalPrice  *float64 `json:"originalPrice,omitempty"`
	HasCustomPrice bool     `json:"hasCustomPrice"`
	Stock          int      `json:"stock"`
	GSTRate        float64  `json:"gstRate,omitempty"`
	HSNCode        string   `json:"hsnCode,omitempty"`
	LowStockAlert  int      `json:"lowStockAlert,omitempty"`
}

type productListEnvelope struct {
	Products []Product `json:"products"`
}

func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var envelope productListEnvelope
	if err := c.get(ctx, "/products", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Products, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	var product Product
	if err := c.get(ctx, "/products/"+id, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

type ProductInput struct {
	Name          string  `json:"name"`
	Category      string  `json:"category,omitempty"`
	Unit          string  `json:"unit,omitempty"`
	Price         float64 `json:"price"`
	Stock         int     `json:"stock"`
	GSTRate       float64 `json:"gstRate,omitempty"`
	HSNCode       string  `json:"hsnCode,omitempty"`
	LowStockAlert int     `json:"lowStockAlert,omitempty"`
}

func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	var product Product
	if err := c.post(ctx, "/products", input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, input ProductInput) (*Product, error) {
	var product Product
	if err := c.put(ctx, "/products/"+id, input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.delete(ctx, "/products/"+id)
}

// AdjustStock applies a manual stock movement ("add" or "remove").
func (c *Client) AdjustStock(ctx context.Context, id string, quantity int, movement string) (*Product, error) {
	if movement != "add" && movement != "remove" {
		return nil, fmt.Errorf("unknown stock movement %q", movement)
	}
	body := map[string]any{"quantity": quantity, "type": movement}
	var product Product
	if err := c.patch(ctx, "/products/"+id+"/stock", body, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) LowStockProducts(ctx context.Context) ([]Product, error) {
	var envelope productListEnvelope
	if err := c.get(ctx, "/products/inventory/low-stock", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Products, nil
}
