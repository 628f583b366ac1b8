package cart

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sahajbill/counter/api/responses"
	"github.com/sahajbill/counter/api/validators"
	cartsvc "github.com/sahajbill/counter/internal/cart"
	"github.com/sahajbill/counter/internal/catalog"
	"github.com/sahajbill/counter/internal/customers"
	pkgerrors "github.com/sahajbill/counter/pkg/errors"
	"github.com/sahajbill/counter/pkg/logger"
	"github.com/sahajbill/counter/pkg/metrics"
	"github.com/sahajbill/counter/pkg/upstream"
)

// Service is the slice of the cart manager the handlers drive.
type Service interface {
	View() cartsvc.View
	AddItem(ctx context.Context, p upstream.Product) error
	SetQuantity(ctx context.Context, productID string, quantity int) error
	RemoveItem(ctx context.Context, productID string) error
	Checkout(ctx context.Context, notes string) (*upstream.Order, error)
}

// CartFetch returns the cart as currently held by the terminal.
func CartFetch(svc Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}
		responses.WriteSuccess(w, newView(svc.View()))
	}
}

// CartAddItem fetches the product, applies the selected customer's price when
// one is set, and adds one unit. The price the line freezes at is whatever
// the catalog offered at this moment.
func CartAddItem(svc Service, catalogSvc catalog.Service, customerSvc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || catalogSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := catalogSvc.Get(r.Context(), payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		offered := *product
		if payload.CustomerID != "" && customerSvc != nil {
			override, err := customerSvc.PriceFor(r.Context(), payload.CustomerID, payload.ProductID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if override.HasCustom {
				if offered.OriginalPrice == nil {
					base := offered.Price
					offered.OriginalPrice = &base
				}
				offered.Price = override.Price
				offered.HasCustomPrice = true
			}
		}

		if err := svc.AddItem(r.Context(), offered); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newView(svc.View()))
	}
}

// CartSetQuantity sets a line's quantity. Zero or less removes the line.
func CartSetQuantity(svc Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		var payload setQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetQuantity(r.Context(), chi.URLParam(r, "productId"), payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newView(svc.View()))
	}
}

func CartRemoveItem(svc Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}
		if err := svc.RemoveItem(r.Context(), chi.URLParam(r, "productId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newView(svc.View()))
	}
}

// CartCheckout places the order. On success the cleared cart comes back with
// the order; on failure the cart is untouched and the error says why.
func CartCheckout(svc Service, gauges *metrics.GatewayMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		// the body is optional; a bare POST checks out with no notes
		var payload checkoutRequest
		if r.ContentLength > 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		order, err := svc.Checkout(r.Context(), payload.Notes)
		if err != nil {
			gauges.IncCheckout("failed")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		gauges.IncCheckout("placed")
		responses.WriteSuccessStatus(w, http.StatusCreated, checkoutDTO{
			Order: order,
			Cart:  newView(svc.View()),
		})
	}
}
