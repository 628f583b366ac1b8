package upstream

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
)

type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

func (c *Client) ImportProducts(ctx context.Context, filename string, file io.Reader) (*ImportResult, error) {
	return c.importCSV(ctx, "/import-export/import/products", filename, file)
}

func (c *Client) ImportCustomers(ctx context.Context, filename string, file io.Reader) (*ImportResult, error) {
	return c.importCSV(ctx, "/import-export/import/customers", filename, file)
}

func (c *Client) importCSV(ctx context.Context, path, filename string, file io.Reader) (*ImportResult, error) {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(writer.Close())
	}()

	var result ImportResult
	if err := c.upload(ctx, path, writer.FormDataContentType(), pr, &result); err != nil {
		return nil, fmt.Errorf("import %s: %w", filename, err)
	}
	return &result, nil
}

// ExportProducts streams the backend's CSV export. Caller closes the reader.
func (c *Client) ExportProducts(ctx context.Context) (io.ReadCloser, string, error) {
	return c.stream(ctx, "GET", "/import-export/export/products", nil)
}

func (c *Client) ExportCustomers(ctx context.Context) (io.ReadCloser, string, error) {
	return c.stream(ctx, "GET", "/import-export/export/customers", nil)
}

func (c *Client) ExportInvoices(ctx context.Context, startDate, endDate string) (io.ReadCloser, string, error) {
	return c.stream(ctx, "GET", "/import-export/export/invoices", dateRangeQuery(startDate, endDate))
}
