package upstream

import (
	"context"
	"io"
)

type Invoice struct {
	ID            string      `json:"id"`
	InvoiceNumber string      `json:"invoiceNumber"`
	CustomerID    string      `json:"customerId,omitempty"`
	CustomerName  string      `json:"customerName,omitempty"`
	Status        string      `json:"status"`
	Items         []OrderItem `json:"items"`
	Subtotal      float64     `json:"subtotal"`
	GSTAmount     float64     `json:"gstAmount"`
	Total         float64     `json:"total"`
	CreatedAt     string      `json:"createdAt"`
}

type invoiceListEnvelope struct {
	Invoices []Invoice `json:"invoices"`
}

func (c *Client) ListInvoices(ctx context.Context) ([]Invoice, error) {
	var envelope invoiceListEnvelope
	if err := c.get(ctx, "/invoices", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Invoices, nil
}

func (c *Client) GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	var invoice Invoice
	if err := c.get(ctx, "/invoices/"+id, nil, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (c *Client) UpdateInvoiceStatus(ctx context.Context, id, status string) (*Invoice, error) {
	body := map[string]string{"status": status}
	var invoice Invoice
	if err := c.patch(ctx, "/invoices/"+id+"/status", body, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// InvoicePDF streams the rendered PDF. The caller must close the reader.
func (c *Client) InvoicePDF(ctx context.Context, id string) (io.ReadCloser, string, error) {
	return c.stream(ctx, "GET", "/invoices/"+id+"/pdf", nil)
}

func (c *Client) DeleteInvoice(ctx context.Context, id string) error {
	return c.delete(ctx, "/invoices/"+id)
}
