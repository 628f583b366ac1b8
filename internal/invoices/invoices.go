// Package invoices fronts invoice retrieval; rendering and numbering happen
// on the backend, the gateway only relays.
package invoices

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	pkgerrors "github.com/sahajbill/counter/pkg/errors"
	"github.com/sahajbill/counter/pkg/upstream"
)

var validStatuses = map[string]struct{}{
	"draft":     {},
	"sent":      {},
	"paid":      {},
	"cancelled": {},
}

type backend interface {
	ListInvoices(ctx context.Context) ([]upstream.Invoice, error)
	GetInvoice(ctx context.Context, id string) (*upstream.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, id, status string) (*upstream.Invoice, error)
	InvoicePDF(ctx context.Context, id string) (io.ReadCloser, string, error)
	DeleteInvoice(ctx context.Context, id string) error
}

type Service interface {
	List(ctx context.Context) ([]upstream.Invoice, error)
	Get(ctx context.Context, id string) (*upstream.Invoice, error)
	UpdateStatus(ctx context.Context, id, status string) (*upstream.Invoice, error)
	PDF(ctx context.Context, id string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	backend backend
}

func NewService(client backend) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("invoice backend required")
	}
	return &service{backend: client}, nil
}

func (s *service) List(ctx context.Context) ([]upstream.Invoice, error) {
	invoices, err := s.backend.ListInvoices(ctx)
	if err != nil {
		return nil, wrap(err, "load invoices")
	}
	return invoices, nil
}

func (s *service) Get(ctx context.Context, id string) (*upstream.Invoice, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	invoice, err := s.backend.GetInvoice(ctx, id)
	if err != nil {
		return nil, wrap(err, "load invoice")
	}
	return invoice, nil
}

func (s *service) UpdateStatus(ctx context.Context, id, status string) (*upstream.Invoice, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	status = strings.ToLower(strings.TrimSpace(status))
	if _, ok := validStatuses[status]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid invoice status").
			WithDetails(map[string]string{"status": status})
	}
	invoice, err := s.backend.UpdateInvoiceStatus(ctx, id, status)
	if err != nil {
		return nil, wrap(err, "update invoice status")
	}
	return invoice, nil
}

// PDF relays the rendered document. The caller owns closing the reader.
func (s *service) PDF(ctx context.Context, id string) (io.ReadCloser, string, error) {
	if err := requireID(id); err != nil {
		return nil, "", err
	}
	body, contentType, err := s.backend.InvoicePDF(ctx, id)
	if err != nil {
		return nil, "", wrap(err, "fetch invoice pdf")
	}
	return body, contentType, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	if err := s.backend.DeleteInvoice(ctx, id); err != nil {
		return wrap(err, "delete invoice")
	}
	return nil
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "invoice id is required")
	}
	return nil
}

func wrap(err error, msg string) error {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) && apiErr.IsNotFound() {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "invoice not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, msg)
}
