package controllers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sahajbill/counter/api/responses"
	"github.com/sahajbill/counter/api/validators"
	"github.com/sahajbill/counter/internal/invoices"
	pkgerrors "github.com/sahajbill/counter/pkg/errors"
	"github.com/sahajbill/counter/pkg/logger"
)

func InvoiceList(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
			return
		}
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"invoices": list})
	}
}

func InvoiceGet(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		invoice, err := svc.Get(r.Context(), chi.URLParam(r, "invoiceId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, invoice)
	}
}

type invoiceStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func InvoiceUpdateStatus(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload invoiceStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		invoice, err := svc.UpdateStatus(r.Context(), chi.URLParam(r, "invoiceId"), payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, invoice)
	}
}

// InvoicePDF streams the rendered document straight through. The body is not
// buffered, so large invoices do not sit in gateway memory.
func InvoicePDF(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, contentType, err := svc.PDF(r.Context(), chi.URLParam(r, "invoiceId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer body.Close()

		if contentType == "" {
			contentType = "application/pdf"
		}
		w.Header().Set("Content-Type", contentType)
		if _, err := io.Copy(w, body); err != nil && logg != nil {
			logg.Error(r.Context(), "invoice.pdf.stream", err)
		}
	}
}

func InvoiceDelete(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "invoiceId")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
