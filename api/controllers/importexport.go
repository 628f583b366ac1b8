package controllers

import (
	"io"
	"net/http"

	"github.com/sahajbill/counter/api/responses"
	pkgerrors "github.com/sahajbill/counter/pkg/errors"
	"github.com/sahajbill/counter/pkg/logger"
	"github.com/sahajbill/counter/pkg/upstream"
)

const maxImportBytes = 10 << 20

// ImportCSV relays an uploaded CSV to the backend importer. target picks the
// dataset, "products" or "customers".
func ImportCSV(client *upstream.Client, target string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "billing client unavailable"))
			return
		}

		if err := r.ParseMultipartForm(maxImportBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid upload"))
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file field is required"))
			return
		}
		defer file.Close()

		var result *upstream.ImportResult
		switch target {
		case "products":
			result, err = client.ImportProducts(r.Context(), header.Filename, file)
		case "customers":
			result, err = client.ImportCustomers(r.Context(), header.Filename, file)
		default:
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown import target"))
			return
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, wrapUpstream(err, "import "+target))
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func exportStream(logg *logger.Logger, w http.ResponseWriter, r *http.Request, filename, contentType string, body io.ReadCloser) {
	defer body.Close()
	if contentType == "" {
		contentType = "text/csv"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if _, err := io.Copy(w, body); err != nil && logg != nil {
		logg.Error(r.Context(), "export.stream", err)
	}
}

func ExportProducts(client *upstream.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, contentType, err := client.ExportProducts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, wrapUpstream(err, "export products"))
			return
		}
		exportStream(logg, w, r, "products.csv", contentType, body)
	}
}

func ExportCustomers(client *upstream.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, contentType, err := client.ExportCustomers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, wrapUpstream(err, "export customers"))
			return
		}
		exportStream(logg, w, r, "customers.csv", contentType, body)
	}
}

func ExportInvoices(client *upstream.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, err := reportRange(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body, contentType, err := client.ExportInvoices(r.Context(), start, end)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, wrapUpstream(err, "export invoices"))
			return
		}
		exportStream(logg, w, r, "invoices.csv", contentType, body)
	}
}
