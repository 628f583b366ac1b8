package customers

import (
	"context"
	"testing"

	pkgerrors "github.com/sahajbill/counter/pkg/errors"
	"github.com/sahajbill/counter/pkg/upstream"
)

type stubBackend struct {
	price    *upstream.CustomPrice
	hasPrice bool
	setCalls []upstream.CustomPrice
	cleared  []string
}

func (s *stubBackend) ListCustomers(ctx context.Context) ([]upstream.Customer, error) {
	return nil, nil
}

func (s *stubBackend) GetCustomer(ctx context.Context, id string) (*upstream.Customer, error) {
	return &upstream.Customer{ID: id}, nil
}

func (s *stubBackend) CreateCustomer(ctx context.Context, input upstream.CustomerInput) (*upstream.Customer, error) {
	return &upstream.Customer{ID: "c1", Name: input.Name}, nil
}

func (s *stubBackend) UpdateCustomer(ctx context.Context, id string, input upstream.CustomerInput) (*upstream.Customer, error) {
	return &upstream.Customer{ID: id, Name: input.Name}, nil
}

func (s *stubBackend) DeleteCustomer(ctx context.Context, id string) error { return nil }

func (s *stubBackend) CustomerProducts(ctx context.Context, customerID string) ([]upstream.Product, error) {
	return nil, nil
}

func (s *stubBackend) SetCustomerPrice(ctx context.Context, customerID string, price upstream.CustomPrice) error {
	s.setCalls = append(s.setCalls, price)
	return nil
}

func (s *stubBackend) SetCustomerPricesBulk(ctx context.Context, customerID string, prices []upstream.CustomPrice) error {
	s.setCalls = append(s.setCalls, prices...)
	return nil
}

func (s *stubBackend) GetCustomerPrice(ctx context.Context, customerID, productID string) (*upstream.CustomPrice, bool, error) {
	return s.price, s.hasPrice, nil
}

func (s *stubBackend) ClearCustomerPrice(ctx context.Context, customerID, productID string) error {
	s.cleared = append(s.cleared, productID)
	return nil
}

func TestZeroPriceOverrideStaysDistinctFromAbsence(t *testing.T) {
	ctx := context.Background()

	// An override of exactly zero reports as a real override.
	withZero := &stubBackend{price: &upstream.CustomPrice{ProductID: "p1", Price: 0}, hasPrice: true}
	svc, err := NewService(withZero)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	override, err := svc.PriceFor(ctx, "c1", "p1")
	if err != nil {
		t.Fatalf("PriceFor: %v", err)
	}
	if !override.HasCustom || override.Price != 0 {
		t.Fatalf("zero override must report HasCustom=true, got %+v", override)
	}

	// No override at all reports the flag off.
	without := &stubBackend{}
	svc, err = NewService(without)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	override, err = svc.PriceFor(ctx, "c1", "p1")
	if err != nil {
		t.Fatalf("PriceFor: %v", err)
	}
	if override.HasCustom {
		t.Fatalf("absence must report HasCustom=false, got %+v", override)
	}
}

func TestClearPriceDeletesTheOverride(t *testing.T) {
	backend := &stubBackend{}
	svc, err := NewService(backend)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	if err := svc.ClearPrice(context.Background(), "c1", "p1"); err != nil {
		t.Fatalf("ClearPrice: %v", err)
	}
	if len(backend.cleared) != 1 || backend.cleared[0] != "p1" {
		t.Fatalf("expected delete call, got %+v", backend.cleared)
	}
	if len(backend.setCalls) != 0 {
		t.Fatal("clearing must never be implemented as set-to-zero")
	}
}

func TestSetPriceRejectsNegative(t *testing.T) {
	svc, err := NewService(&stubBackend{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	err = svc.SetPrice(context.Background(), "c1", "p1", -5)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
