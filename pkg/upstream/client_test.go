package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sahajbill/counter/pkg/config"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(config.UpstreamConfig{BaseURL: srv.URL, Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("unexpected error building client: %v", err)
	}
	return client, srv
}

func TestNewNormalizesBaseURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://billing.example.com", "https://billing.example.com/api"},
		{"https://billing.example.com/", "https://billing.example.com/api"},
		{"https://billing.example.com/api", "https://billing.example.com/api"},
		{"https://billing.example.com/api/", "https://billing.example.com/api"},
	}
	for _, tc := range cases {
		client, err := New(config.UpstreamConfig{BaseURL: tc.in, Timeout: time.Second})
		if err != nil {
			t.Fatalf("New(%q) returned error: %v", tc.in, err)
		}
		if client.baseURL != tc.want {
			t.Fatalf("New(%q) base = %q, want %q", tc.in, client.baseURL, tc.want)
		}
	}

	if _, err := New(config.UpstreamConfig{BaseURL: "  "}); err == nil {
		t.Fatal("expected error for empty base url")
	}
}

func TestListProductsForwardsToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/api/products" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{"products": []map[string]any{
			{"id": "p1", "name": "Rice 5kg", "price": 450.0, "stock": 12, "hasCustomPrice": false},
		}})
	}))

	ctx := WithToken(context.Background(), "tok-123")
	products, err := client.ListProducts(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer token forwarded, got %q", gotAuth)
	}
	if len(products) != 1 || products[0].ID != "p1" {
		t.Fatalf("unexpected products %+v", products)
	}
}

func TestErrorEnvelopeDecoded(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "insufficient stock for Rice 5kg"})
	}))

	_, err := client.CreateOrder(context.Background(), OrderRequest{
		Items: []OrderItem{{ProductID: "p1", ProductName: "Rice 5kg", Quantity: 99, UnitPrice: 450}},
	})
	if err == nil {
		t.Fatal("expected error from 409 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Status != http.StatusConflict {
		t.Fatalf("unexpected status %d", apiErr.Status)
	}
	if apiErr.Message != "insufficient stock for Rice 5kg" {
		t.Fatalf("unexpected message %q", apiErr.Message)
	}
}

func TestErrorEnvelopeFallsBackToStatusOnly(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "not json")
	}))

	_, err := client.ListOrders(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Message != "" {
		t.Fatalf("expected empty message, got %q", apiErr.Message)
	}
	if apiErr.Error() != "upstream 502" {
		t.Fatalf("unexpected error string %q", apiErr.Error())
	}
}

func TestGetCustomerPriceAbsenceIsNotAnError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "no custom price"})
	}))

	price, ok, err := client.GetCustomerPrice(context.Background(), "c1", "p1")
	if err != nil {
		t.Fatalf("absence should not be an error, got %v", err)
	}
	if ok || price != nil {
		t.Fatalf("expected no override, got %+v", price)
	}
}

func TestInvoicePDFStreams(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/invoices/inv-1/pdf" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 fake"))
	}))

	body, contentType, err := client.InvoicePDF(context.Background(), "inv-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer body.Close()

	if contentType != "application/pdf" {
		t.Fatalf("unexpected content type %q", contentType)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	if string(data) != "%PDF-1.4 fake" {
		t.Fatalf("unexpected pdf payload %q", data)
	}
}
