// Package dashboard relays the KPI tiles and charts for the home screen.
package dashboard

import (
	"context"
	"fmt"

	pkgerrors "github.com/sahajbill/counter/pkg/errors"
	"github.com/sahajbill/counter/pkg/upstream"
)

type backend interface {
	Dashboard(ctx context.Context, month, year int) (*upstream.DashboardOverview, error)
	DashboardSales(ctx context.Context, month, year int) ([]upstream.SalesPoint, error)
	DashboardInventory(ctx context.Context) (*upstream.InventorySummary, error)
}

type Service interface {
	Overview(ctx context.Context, month, year int) (*upstream.DashboardOverview, error)
	Sales(ctx context.Context, month, year int) ([]upstream.SalesPoint, error)
	Inventory(ctx context.Context) (*upstream.InventorySummary, error)
}

type service struct {
	backend backend
}

func NewService(client backend) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("dashboard backend required")
	}
	return &service{backend: client}, nil
}

func (s *service) Overview(ctx context.Context, month, year int) (*upstream.DashboardOverview, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	overview, err := s.backend.Dashboard(ctx, month, year)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "load dashboard")
	}
	return overview, nil
}

func (s *service) Sales(ctx context.Context, month, year int) ([]upstream.SalesPoint, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	sales, err := s.backend.DashboardSales(ctx, month, year)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "load sales chart")
	}
	return sales, nil
}

func (s *service) Inventory(ctx context.Context) (*upstream.InventorySummary, error) {
	summary, err := s.backend.DashboardInventory(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "load inventory summary")
	}
	return summary, nil
}

// validatePeriod allows zero for "current" but rejects nonsense values before
// they hit the wire.
func validatePeriod(month, year int) error {
	if month < 0 || month > 12 {
		return pkgerrors.New(pkgerrors.CodeValidation, "month must be between 1 and 12")
	}
	if year < 0 || (year > 0 && year < 2000) {
		return pkgerrors.New(pkgerrors.CodeValidation, "year is out of range")
	}
	return nil
}
