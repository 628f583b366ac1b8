package upstream

import (
	"context"
	"errors"
)

type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	GSTIN   string `json:"gstin,omitempty"`
	Address string `json:"address,omitempty"`
}

type customerListEnvelope struct {
	Customers []Customer `json:"customers"`
}

func (c *Client) ListCustomers(ctx context.Context) ([]Customer, error) {
	var envelope customerListEnvelope
	if err := c.get(ctx, "/customers", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Customers, nil
}

func (c *Client) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	var customer Customer
	if err := c.get(ctx, "/customers/"+id, nil, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

type CustomerInput struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	GSTIN   string `json:"gstin,omitempty"`
	Address string `json:"address,omitempty"`
}

func (c *Client) CreateCustomer(ctx context.Context, input CustomerInput) (*Customer, error) {
	var customer Customer
	if err := c.post(ctx, "/customers", input, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *Client) UpdateCustomer(ctx context.Context, id string, input CustomerInput) (*Customer, error) {
	var customer Customer
	if err := c.put(ctx, "/customers/"+id, input, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *Client) DeleteCustomer(ctx context.Context, id string) error {
	return c.delete(ctx, "/customers/"+id)
}

// CustomerProducts lists the catalog priced for one customer, with any custom
// prices applied and flagged.
func (c *Client) CustomerProducts(ctx context.Context, customerID string) ([]Product, error) {
	var envelope productListEnvelope
	if err := c.get(ctx, "/customers/"+customerID+"/products", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Products, nil
}

// CustomPrice describes a per-customer price override. Present means the
// override exists; a zero Price is a legitimate override value.
type CustomPrice struct {
	ProductID string  `json:"productId"`
	Price     float64 `json:"price"`
}

func (c *Client) SetCustomerPrice(ctx context.Context, customerID string, price CustomPrice) error {
	return c.post(ctx, "/customers/"+customerID+"/pricing", price, nil)
}

func (c *Client) SetCustomerPricesBulk(ctx context.Context, customerID string, prices []CustomPrice) error {
	body := map[string]any{"pricing": prices}
	return c.post(ctx, "/customers/"+customerID+"/pricing/bulk", body, nil)
}

// GetCustomerPrice returns the override and whether one exists at all.
func (c *Client) GetCustomerPrice(ctx context.Context, customerID, productID string) (*CustomPrice, bool, error) {
	var price CustomPrice
	err := c.get(ctx, "/customers/"+customerID+"/pricing/"+productID, nil, &price)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsNotFound() {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &price, true, nil
}

// ClearCustomerPrice removes the override outright rather than zeroing it, so
// "no override" and "override of zero" stay distinguishable.
func (c *Client) ClearCustomerPrice(ctx context.Context, customerID, productID string) error {
	return c.delete(ctx, "/customers/" + customerID + "/pricing/" + productID)
}
