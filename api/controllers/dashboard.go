package controllers

import (
	"net/http"
	"time"

	"github.com/sahajbill/counter/api/responses"
	"github.com/sahajbill/counter/api/validators"
	"github.com/sahajbill/counter/internal/dashboard"
	pkgerrors "github.com/sahajbill/counter/pkg/errors"
	"github.com/sahajbill/counter/pkg/logger"
)

func dashboardPeriod(r *http.Request) (int, int, error) {
	now := time.Now()
	month, err := validators.ParseQueryInt(r, "month", int(now.Month()), 1, 12)
	if err != nil {
		return 0, 0, err
	}
	year, err := validators.ParseQueryInt(r, "year", now.Year(), 2000, 2100)
	if err != nil {
		return 0, 0, err
	}
	return month, year, nil
}

func DashboardOverview(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}
		month, year, err := dashboardPeriod(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		overview, err := svc.Overview(r.Context(), month, year)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, overview)
	}
}

func DashboardSales(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		month, year, err := dashboardPeriod(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sales, err := svc.Sales(r.Context(), month, year)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"sales": sales})
	}
}

func DashboardInventory(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.Inventory(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
