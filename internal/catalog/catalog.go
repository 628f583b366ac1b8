// Package catalog serves the product browsing surface that feeds the cart.
package catalog

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/sahajbill/counter/pkg/errors"
	"github.com/sahajbill/counter/pkg/upstream"
)

type productLister interface {
	ListProducts(ctx context.Context) ([]upstream.Product, error)
	GetProduct(ctx context.Context, id string) (*upstream.Product, error)
}

// Service exposes the catalog as the browsing surface consumes it.
type Service interface {
	List(ctx context.Context, searchTerm string) ([]upstream.Product, error)
	Get(ctx context.Context, id string) (*upstream.Product, error)
}

type service struct {
	backend productLister
}

func NewService(backend productLister) (Service, error) {
	if backend == nil {
		return nil, fmt.Errorf("product backend required")
	}
	return &service{backend: backend}, nil
}

func (s *service) List(ctx context.Context, searchTerm string) ([]upstream.Product, error) {
	products, err := s.backend.ListProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "load products")
	}
	return Filter(products, searchTerm), nil
}

func (s *service) Get(ctx context.Context, id string) (*upstream.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.backend.GetProduct(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "load product")
	}
	return product, nil
}

// Filter returns the products whose name or category contains the term,
// case-insensitively, keeping the input order. An empty term matches all.
func Filter(products []upstream.Product, term string) []upstream.Product {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return products
	}
	matched := make([]upstream.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Category), term) {
			matched = append(matched, p)
		}
	}
	return matched
}
