// Package orders fronts the backend order book for the orders screen. Order
// creation itself goes through the cart manager's checkout.
package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/sahajbill/counter/pkg/errors"
	"github.com/sahajbill/counter/pkg/upstream"
)

var validStatuses = map[string]struct{}{
	"pending":   {},
	"confirmed": {},
	"completed": {},
	"cancelled": {},
}

type backend interface {
	ListOrders(ctx context.Context) ([]upstream.Order, error)
	GetOrder(ctx context.Context, id string) (*upstream.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) (*upstream.Order, error)
	ConvertOrderToInvoice(ctx context.Context, id string) (*upstream.Invoice, error)
	DeleteOrder(ctx context.Context, id string) error
}

type Service interface {
	List(ctx context.Context) ([]upstream.Order, error)
	Get(ctx context.Context, id string) (*upstream.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*upstream.Order, error)
	ConvertToInvoice(ctx context.Context, id string) (*upstream.Invoice, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	backend backend
}

func NewService(client backend) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("order backend required")
	}
	return &service{backend: client}, nil
}

func (s *service) List(ctx context.Context) ([]upstream.Order, error) {
	orders, err := s.backend.ListOrders(ctx)
	if err != nil {
		return nil, wrap(err, "load orders")
	}
	return orders, nil
}

func (s *service) Get(ctx context.Context, id string) (*upstream.Order, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	order, err := s.backend.GetOrder(ctx, id)
	if err != nil {
		return nil, wrap(err, "load order")
	}
	return order, nil
}

func (s *service) UpdateStatus(ctx context.Context, id, status string) (*upstream.Order, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	status = strings.ToLower(strings.TrimSpace(status))
	if _, ok := validStatuses[status]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
			WithDetails(map[string]string{"status": status})
	}
	order, err := s.backend.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return nil, wrap(err, "update order status")
	}
	return order, nil
}

func (s *service) ConvertToInvoice(ctx context.Context, id string) (*upstream.Invoice, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	invoice, err := s.backend.ConvertOrderToInvoice(ctx, id)
	if err != nil {
		return nil, wrap(err, "convert order to invoice")
	}
	return invoice, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	if err := s.backend.DeleteOrder(ctx, id); err != nil {
		return wrap(err, "delete order")
	}
	return nil
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	return nil
}

func wrap(err error, msg string) error {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) && apiErr.IsNotFound() {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, msg)
}
