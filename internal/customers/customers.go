// Package customers manages customer records and their per-customer price
// overrides. An override is presence-flagged: clearing one deletes it
// upstream, and a zero price with the flag set is a real price, never
// shorthand for "no override".
package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/sahajbill/counter/pkg/errors"
	"github.com/sahajbill/counter/pkg/upstream"
)

type backend interface {
	ListCustomers(ctx context.Context) ([]upstream.Customer, error)
	GetCustomer(ctx context.Context, id string) (*upstream.Customer, error)
	CreateCustomer(ctx context.Context, input upstream.CustomerInput) (*upstream.Customer, error)
	UpdateCustomer(ctx context.Context, id string, input upstream.CustomerInput) (*upstream.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
	CustomerProducts(ctx context.Context, customerID string) ([]upstream.Product, error)
	SetCustomerPrice(ctx context.Context, customerID string, price upstream.CustomPrice) error
	SetCustomerPricesBulk(ctx context.Context, customerID string, prices []upstream.CustomPrice) error
	GetCustomerPrice(ctx context.Context, customerID, productID string) (*upstream.CustomPrice, bool, error)
	ClearCustomerPrice(ctx context.Context, customerID, productID string) error
}

// PriceOverride reports a customer's price for a product alongside whether an
// override exists at all.
type PriceOverride struct {
	ProductID string  `json:"productId"`
	Price     float64 `json:"price"`
	HasCustom bool    `json:"hasCustomPrice"`
}

type Service interface {
	List(ctx context.Context) ([]upstream.Customer, error)
	Get(ctx context.Context, id string) (*upstream.Customer, error)
	Create(ctx context.Context, input upstream.CustomerInput) (*upstream.Customer, error)
	Update(ctx context.Context, id string, input upstream.CustomerInput) (*upstream.Customer, error)
	Delete(ctx context.Context, id string) error
	Products(ctx context.Context, customerID string) ([]upstream.Product, error)
	SetPrice(ctx context.Context, customerID, productID string, price float64) error
	SetPricesBulk(ctx context.Context, customerID string, prices []upstream.CustomPrice) error
	PriceFor(ctx context.Context, customerID, productID string) (PriceOverride, error)
	ClearPrice(ctx context.Context, customerID, productID string) error
}

type service struct {
	backend backend
}

func NewService(client backend) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("customer backend required")
	}
	return &service{backend: client}, nil
}

func (s *service) List(ctx context.Context) ([]upstream.Customer, error) {
	customers, err := s.backend.ListCustomers(ctx)
	if err != nil {
		return nil, wrap(err, "load customers")
	}
	return customers, nil
}

func (s *service) Get(ctx context.Context, id string) (*upstream.Customer, error) {
	if err := requireID(id, "customer id"); err != nil {
		return nil, err
	}
	customer, err := s.backend.GetCustomer(ctx, id)
	if err != nil {
		return nil, wrap(err, "load customer")
	}
	return customer, nil
}

func (s *service) Create(ctx context.Context, input upstream.CustomerInput) (*upstream.Customer, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	customer, err := s.backend.CreateCustomer(ctx, input)
	if err != nil {
		return nil, wrap(err, "create customer")
	}
	return customer, nil
}

func (s *service) Update(ctx context.Context, id string, input upstream.CustomerInput) (*upstream.Customer, error) {
	if err := requireID(id, "customer id"); err != nil {
		return nil, err
	}
	customer, err := s.backend.UpdateCustomer(ctx, id, input)
	if err != nil {
		return nil, wrap(err, "update customer")
	}
	return customer, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := requireID(id, "customer id"); err != nil {
		return err
	}
	if err := s.backend.DeleteCustomer(ctx, id); err != nil {
		return wrap(err, "delete customer")
	}
	return nil
}

func (s *service) Products(ctx context.Context, customerID string) ([]upstream.Product, error) {
	if err := requireID(customerID, "customer id"); err != nil {
		return nil, err
	}
	products, err := s.backend.CustomerProducts(ctx, customerID)
	if err != nil {
		return nil, wrap(err, "load customer products")
	}
	return products, nil
}

func (s *service) SetPrice(ctx context.Context, customerID, productID string, price float64) error {
	if err := requireID(customerID, "customer id"); err != nil {
		return err
	}
	if err := requireID(productID, "product id"); err != nil {
		return err
	}
	if price < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	err := s.backend.SetCustomerPrice(ctx, customerID, upstream.CustomPrice{ProductID: productID, Price: price})
	if err != nil {
		return wrap(err, "set customer price")
	}
	return nil
}

func (s *service) SetPricesBulk(ctx context.Context, customerID string, prices []upstream.CustomPrice) error {
	if err := requireID(customerID, "customer id"); err != nil {
		return err
	}
	if len(prices) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one price is required")
	}
	for _, price := range prices {
		if strings.TrimSpace(price.ProductID) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "every price needs a product id")
		}
		if price.Price < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative").
				WithDetails(map[string]string{"productId": price.ProductID})
		}
	}
	if err := s.backend.SetCustomerPricesBulk(ctx, customerID, prices); err != nil {
		return wrap(err, "set customer prices")
	}
	return nil
}

func (s *service) PriceFor(ctx context.Context, customerID, productID string) (PriceOverride, error) {
	if err := requireID(customerID, "customer id"); err != nil {
		return PriceOverride{}, err
	}
	if err := requireID(productID, "product id"); err != nil {
		return PriceOverride{}, err
	}
	price, ok, err := s.backend.GetCustomerPrice(ctx, customerID, productID)
	if err != nil {
		return PriceOverride{}, wrap(err, "load customer price")
	}
	if !ok {
		return PriceOverride{ProductID: productID}, nil
	}
	return PriceOverride{ProductID: productID, Price: price.Price, HasCustom: true}, nil
}

func (s *service) ClearPrice(ctx context.Context, customerID, productID string) error {
	if err := requireID(customerID, "customer id"); err != nil {
		return err
	}
	if err := requireID(productID, "product id"); err != nil {
		return err
	}
	if err := s.backend.ClearCustomerPrice(ctx, customerID, productID); err != nil {
		return wrap(err, "clear customer price")
	}
	return nil
}

func requireID(id, label string) error {
	if strings.TrimSpace(id) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, label+" is required")
	}
	return nil
}

func wrap(err error, msg string) error {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) && apiErr.IsNotFound() {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "customer not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, msg)
}
