// Package reports relays the tabular business reports, including the GSTR
// filing tables. The gateway validates parameters and passes tables through
// untouched.
package reports

import (
	"context"
	"fmt"
	"regexp"
	"time"

	pkgerrors "github.com/sahajbill/counter/pkg/errors"
	"github.com/sahajbill/counter/pkg/upstream"
)

// periodPattern matches GSTR filing periods, "MM-YYYY".
var periodPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])-\d{4}$`)

type backend interface {
	SalesReport(ctx context.Context, startDate, endDate string) (*upstream.Report, error)
	ProfitLossReport(ctx context.Context, startDate, endDate string) (*upstream.Report, error)
	ProductSalesReport(ctx context.Context, startDate, endDate string) (*upstream.Report, error)
	GSTR1Report(ctx context.Context, period string) (*upstream.Report, error)
	GSTR3BReport(ctx context.Context, period string) (*upstream.Report, error)
	SalesTransactionsReport(ctx context.Context, startDate, endDate string) (*upstream.Report, error)
	PurchaseTransactionsReport(ctx context.Context, startDate, endDate string) (*upstream.Report, error)
	BillWiseItemsReport(ctx context.Context, startDate, endDate string) (*upstream.Report, error)
	StockSummaryReport(ctx context.Context) (*upstream.Report, error)
	PLStatementReport(ctx context.Context, startDate, endDate string) (*upstream.Report, error)
}

// Kind names one of the relayed report tables.
type Kind string

const (
	KindSales                Kind = "sales"
	KindProfitLoss           Kind = "profit-loss"
	KindProductSales         Kind = "product-sales"
	KindSalesTransactions    Kind = "transactions-sales"
	KindPurchaseTransactions Kind = "transactions-purchases"
	KindBillWiseItems        Kind = "bill-wise-items"
	KindPLStatement          Kind = "pl-statement"
)

type Service interface {
	Ranged(ctx context.Context, kind Kind, startDate, endDate string) (*upstream.Report, error)
	GSTR1(ctx context.Context, period string) (*upstream.Report, error)
	GSTR3B(ctx context.Context, period string) (*upstream.Report, error)
	StockSummary(ctx context.Context) (*upstream.Report, error)
}

type service struct {
	backend backend
}

func NewService(client backend) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("report backend required")
	}
	return &service{backend: client}, nil
}

// Ranged dispatches the date-ranged report tables.
func (s *service) Ranged(ctx context.Context, kind Kind, startDate, endDate string) (*upstream.Report, error) {
	if err := validateRange(startDate, endDate); err != nil {
		return nil, err
	}

	var fetch func(context.Context, string, string) (*upstream.Report, error)
	switch kind {
	case KindSales:
		fetch = s.backend.SalesReport
	case KindProfitLoss:
		fetch = s.backend.ProfitLossReport
	case KindProductSales:
		fetch = s.backend.ProductSalesReport
	case KindSalesTransactions:
		fetch = s.backend.SalesTransactionsReport
	case KindPurchaseTransactions:
		fetch = s.backend.PurchaseTransactionsReport
	case KindBillWiseItems:
		fetch = s.backend.BillWiseItemsReport
	case KindPLStatement:
		fetch = s.backend.PLStatementReport
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown report kind").
			WithDetails(map[string]string{"kind": string(kind)})
	}

	report, err := fetch(ctx, startDate, endDate)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "load report")
	}
	return report, nil
}

func (s *service) GSTR1(ctx context.Context, period string) (*upstream.Report, error) {
	if err := validateFilingPeriod(period); err != nil {
		return nil, err
	}
	report, err := s.backend.GSTR1Report(ctx, period)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "load gstr-1")
	}
	return report, nil
}

func (s *service) GSTR3B(ctx context.Context, period string) (*upstream.Report, error) {
	if err := validateFilingPeriod(period); err != nil {
		return nil, err
	}
	report, err := s.backend.GSTR3BReport(ctx, period)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "load gstr-3b")
	}
	return report, nil
}

func (s *service) StockSummary(ctx context.Context) (*upstream.Report, error) {
	report, err := s.backend.StockSummaryReport(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "load stock summary")
	}
	return report, nil
}

func validateRange(startDate, endDate string) error {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "startDate must be YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "endDate must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return pkgerrors.New(pkgerrors.CodeValidation, "endDate is before startDate")
	}
	return nil
}

func validateFilingPeriod(period string) error {
	if !periodPattern.MatchString(period) {
		return pkgerrors.New(pkgerrors.CodeValidation, "period must be MM-YYYY")
	}
	return nil
}
