package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sahajbill/counter/api/responses"
	"github.com/sahajbill/counter/api/validators"
	"github.com/sahajbill/counter/internal/catalog"
	pkgerrors "github.com/sahajbill/counter/pkg/errors"
	"github.com/sahajbill/counter/pkg/logger"
	"github.com/sahajbill/counter/pkg/upstream"
)

// CatalogList serves the product grid. The q parameter narrows by name or
// category, matching what the search box did.
func CatalogList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		products, err := svc.List(r.Context(), strings.TrimSpace(r.URL.Query().Get("q")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": products})
	}
}

func CatalogGet(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		product, err := svc.Get(r.Context(), chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

type productPayload struct {
	Name          string  `json:"name" validate:"required"`
	Category      string  `json:"category"`
	Unit          string  `json:"unit"`
	Price         float64 `json:"price" validate:"gte=0"`
	Stock         int     `json:"stock" validate:"gte=0"`
	GSTRate       float64 `json:"gstRate" validate:"gte=0"`
	HSNCode       string  `json:"hsnCode"`
	LowStockAlert int     `json:"lowStockAlert" validate:"gte=0"`
}

func (p productPayload) toInput() upstream.ProductInput {
	return upstream.ProductInput{
		Name:          p.Name,
		Category:      p.Category,
		Unit:          p.Unit,
		Price:         p.Price,
		Stock:         p.Stock,
		GSTRate:       p.GSTRate,
		HSNCode:       p.HSNCode,
		LowStockAlert: p.LowStockAlert,
	}
}

func ProductCreate(client *upstream.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload productPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := client.CreateProduct(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, wrapUpstream(err, "create product"))
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func ProductUpdate(client *upstream.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload productPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := client.UpdateProduct(r.Context(), chi.URLParam(r, "productId"), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, wrapUpstream(err, "update product"))
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func ProductDelete(client *upstream.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := client.DeleteProduct(r.Context(), chi.URLParam(r, "productId")); err != nil {
			responses.WriteError(r.Context(), logg, w, wrapUpstream(err, "delete product"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type stockAdjustRequest struct {
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Movement string `json:"movement" validate:"required,oneof=add remove"`
}

func ProductAdjustStock(client *upstream.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload stockAdjustRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := client.AdjustStock(r.Context(), chi.URLParam(r, "productId"), payload.Quantity, payload.Movement)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, wrapUpstream(err, "adjust stock"))
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func ProductLowStock(client *upstream.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := client.LowStockProducts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, wrapUpstream(err, "load low stock"))
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": products})
	}
}
