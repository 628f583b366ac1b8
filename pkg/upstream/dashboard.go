package upstream

import (
	"context"
	"net/url"
	"strconv"
)

// DashboardOverview carries the month's KPI tiles.
type DashboardOverview struct {
	TotalSales     float64 `json:"totalSales"`
	TotalOrders    int     `json:"totalOrders"`
	TotalCustomers int     `json:"totalCustomers"`
	TotalProducts  int     `json:"totalProducts"`
	PendingOrders  int     `json:"pendingOrders"`
	LowStockCount  int     `json:"lowStockCount"`
}

type SalesPoint struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

type InventorySummary struct {
	TotalStockValue float64   `json:"totalStockValue"`
	LowStock        []Product `json:"lowStock"`
}

func monthYearQuery(month, year int) url.Values {
	query := url.Values{}
	if month > 0 {
		query.Set("month", strconv.Itoa(month))
	}
	if year > 0 {
		query.Set("year", strconv.Itoa(year))
	}
	return query
}

func (c *Client) Dashboard(ctx context.Context, month, year int) (*DashboardOverview, error) {
	var overview DashboardOverview
	if err := c.get(ctx, "/dashboard", monthYearQuery(month, year), &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

func (c *Client) DashboardSales(ctx context.Context, month, year int) ([]SalesPoint, error) {
	var envelope struct {
		Sales []SalesPoint `json:"sales"`
	}
	if err := c.get(ctx, "/dashboard/sales", monthYearQuery(month, year), &envelope); err != nil {
		return nil, err
	}
	return envelope.Sales, nil
}

func (c *Client) DashboardInventory(ctx context.Context) (*InventorySummary, error) {
	var summary InventorySummary
	if err := c.get(ctx, "/dashboard/inventory", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
