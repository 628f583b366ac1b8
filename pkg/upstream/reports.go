package upstream

import (
	"context"
	"net/url"
)

// Report is a generic tabular report: ordered column names plus rows keyed by
// column. The backend shapes every report this way; the gateway does not
// interpret the cells.
type Report struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
	Totals  map[string]any   `json:"totals,omitempty"`
}

func dateRangeQuery(startDate, endDate string) url.Values {
	query := url.Values{}
	if startDate != "" {
		query.Set("startDate", startDate)
	}
	if endDate != "" {
		query.Set("endDate", endDate)
	}
	return query
}

func (c *Client) report(ctx context.Context, path string, query url.Values) (*Report, error) {
	var report Report
	if err := c.get(ctx, path, query, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *Client) SalesReport(ctx context.Context, startDate, endDate string) (*Report, error) {
	return c.report(ctx, "/reports/sales", dateRangeQuery(startDate, endDate))
}

func (c *Client) ProfitLossReport(ctx context.Context, startDate, endDate string) (*Report, error) {
	return c.report(ctx, "/reports/profit-loss", dateRangeQuery(startDate, endDate))
}

func (c *Client) ProductSalesReport(ctx context.Context, startDate, endDate string) (*Report, error) {
	return c.report(ctx, "/reports/product-sales", dateRangeQuery(startDate, endDate))
}

// GSTR1Report returns the outward-supplies filing table for a period ("MM-YYYY").
func (c *Client) GSTR1Report(ctx context.Context, period string) (*Report, error) {
	query := url.Values{}
	query.Set("period", period)
	return c.report(ctx, "/reports/gstr-1", query)
}

// GSTR3BReport returns the summary filing table for a period ("MM-YYYY").
func (c *Client) GSTR3BReport(ctx context.Context, period string) (*Report, error) {
	query := url.Values{}
	query.Set("period", period)
	return c.report(ctx, "/reports/gstr-3b", query)
}

func (c *Client) SalesTransactionsReport(ctx context.Context, startDate, endDate string) (*Report, error) {
	return c.report(ctx, "/reports/transactions/sales", dateRangeQuery(startDate, endDate))
}

func (c *Client) PurchaseTransactionsReport(ctx context.Context, startDate, endDate string) (*Report, error) {
	return c.report(ctx, "/reports/transactions/purchases", dateRangeQuery(startDate, endDate))
}

func (c *Client) BillWiseItemsReport(ctx context.Context, startDate, endDate string) (*Report, error) {
	return c.report(ctx, "/reports/bill-wise/items", dateRangeQuery(startDate, endDate))
}

func (c *Client) StockSummaryReport(ctx context.Context) (*Report, error) {
	return c.report(ctx, "/reports/items/stock-summary", nil)
}

func (c *Client) PLStatementReport(ctx context.Context, startDate, endDate string) (*Report, error) {
	return c.report(ctx, "/reports/items/pl-statement", dateRangeQuery(startDate, endDate))
}
