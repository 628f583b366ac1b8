package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	cartsvc "github.com/sahajbill/counter/internal/cart"
	pkgAuth "github.com/sahajbill/counter/pkg/auth"
	"github.com/sahajbill/counter/pkg/config"
	"github.com/sahajbill/counter/pkg/metrics"
	"github.com/sahajbill/counter/pkg/store"
	"github.com/sahajbill/counter/pkg/upstream"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSubmitter struct{}

func (stubSubmitter) CreateOrder(context.Context, upstream.OrderRequest) (*upstream.Order, error) {
	return &upstream.Order{ID: "ord-1"}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App:  config.AppConfig{Env: "dev", Port: "8080", TerminalID: "counter-1"},
		JWT:  config.JWTConfig{Secret: "test-secret", Issuer: "sahajbill"},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

func testHandler(t *testing.T) http.Handler {
	t.Helper()
	mgr, err := cartsvc.NewManager(store.NewMemoryStore(), stubSubmitter{})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return NewRouter(testConfig(), nil, metrics.NewGatewayMetrics(), stubPinger{}, nil, mgr, nil, nil, nil, nil, nil, nil)
}

func TestHealthEndpointsArePublic(t *testing.T) {
	router := testHandler(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestMetricsEndpointIsPublic(t *testing.T) {
	router := testHandler(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := testHandler(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/cart/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestValidTokenReachesCart(t *testing.T) {
	router := testHandler(t)
	token, err := pkgAuth.MintSessionToken(testConfig().JWT, "user-1", "staff", time.Minute)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/v1/cart/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body %s", rec.Code, rec.Body.String())
	}
}

func TestReportsRequireAdminRole(t *testing.T) {
	router := testHandler(t)
	token, err := pkgAuth.MintSessionToken(testConfig().JWT, "user-1", "staff", time.Minute)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/v1/reports/stock-summary", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body %s", rec.Code, rec.Body.String())
	}
}
