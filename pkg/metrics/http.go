package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// GatewayMetrics records request metadata for the counter gateway.
type GatewayMetrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	checkout *prometheus.CounterVec
}

// NewGatewayMetrics registers the gateway metrics on a fresh registry.
func NewGatewayMetrics() *GatewayMetrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Handled HTTP requests.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of handled HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	checkout := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_total",
		Help: "Checkout attempts by outcome.",
	}, []string{"outcome"})
	registry.MustRegister(requests, duration, checkout)
	return &GatewayMetrics{
		registry: registry,
		requests: requests,
		duration: duration,
		checkout: checkout,
	}
}

// ObserveRequest records one handled request.
func (g *GatewayMetrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if g == nil || g.requests == nil {
		return
	}
	g.requests.WithLabelValues(method, normalizeRoute(route), strconv.Itoa(status)).Inc()
	g.duration.WithLabelValues(method, normalizeRoute(route)).Observe(elapsed.Seconds())
}

// IncCheckout counts a checkout attempt. Outcome is "placed" or "failed".
func (g *GatewayMetrics) IncCheckout(outcome string) {
	if g == nil || g.checkout == nil {
		return
	}
	g.checkout.WithLabelValues(outcome).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (g *GatewayMetrics) Handler() http.Handler {
	if g == nil || g.registry == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g.registry, promhttp.HandlerOpts{})
}

func normalizeRoute(route string) string {
	if route == "" {
		return "unmatched"
	}
	return route
}
