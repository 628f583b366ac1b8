package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sahajbill/counter/api/responses"
	"github.com/sahajbill/counter/api/validators"
	"github.com/sahajbill/counter/internal/customers"
	pkgerrors "github.com/sahajbill/counter/pkg/errors"
	"github.com/sahajbill/counter/pkg/logger"
	"github.com/sahajbill/counter/pkg/upstream"
)

type customerPayload struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
	GSTIN   string `json:"gstin"`
}

func (p customerPayload) toInput() upstream.CustomerInput {
	return upstream.CustomerInput{
		Name:    p.Name,
		Phone:   p.Phone,
		Email:   p.Email,
		Address: p.Address,
		GSTIN:   p.GSTIN,
	}
}

func CustomerList(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"customers": list})
	}
}

func CustomerGet(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customer, err := svc.Get(r.Context(), chi.URLParam(r, "customerId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, customer)
	}
}

func CustomerCreate(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload customerPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		customer, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, customer)
	}
}

func CustomerUpdate(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload customerPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		customer, err := svc.Update(r.Context(), chi.URLParam(r, "customerId"), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, customer)
	}
}

func CustomerDelete(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "customerId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// CustomerProducts lists the catalog with this customer's prices applied.
func CustomerProducts(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := svc.Products(r.Context(), chi.URLParam(r, "customerId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": products})
	}
}

type customerPriceRequest struct {
	ProductID string  `json:"productId" validate:"required"`
	Price     float64 `json:"price" validate:"gte=0"`
}

func CustomerSetPrice(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload customerPriceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.SetPrice(r.Context(), chi.URLParam(r, "customerId"), payload.ProductID, payload.Price); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "saved"})
	}
}

type customerPricesBulkRequest struct {
	Prices []customerPriceRequest `json:"prices" validate:"required,min=1,dive"`
}

func CustomerSetPricesBulk(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload customerPricesBulkRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		prices := make([]upstream.CustomPrice, 0, len(payload.Prices))
		for _, p := range payload.Prices {
			prices = append(prices, upstream.CustomPrice{ProductID: p.ProductID, Price: p.Price})
		}
		if err := svc.SetPricesBulk(r.Context(), chi.URLParam(r, "customerId"), prices); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "saved"})
	}
}

func CustomerClearPrice(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.ClearPrice(r.Context(), chi.URLParam(r, "customerId"), chi.URLParam(r, "productId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}
