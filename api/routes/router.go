package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sahajbill/counter/api/controllers"
	cartcontrollers "github.com/sahajbill/counter/api/controllers/cart"
	"github.com/sahajbill/counter/api/middleware"
	cartsvc "github.com/sahajbill/counter/internal/cart"
	"github.com/sahajbill/counter/internal/catalog"
	"github.com/sahajbill/counter/internal/customers"
	"github.com/sahajbill/counter/internal/dashboard"
	"github.com/sahajbill/counter/internal/invoices"
	"github.com/sahajbill/counter/internal/orders"
	"github.com/sahajbill/counter/internal/reports"
	"github.com/sahajbill/counter/pkg/config"
	"github.com/sahajbill/counter/pkg/logger"
	"github.com/sahajbill/counter/pkg/metrics"
	"github.com/sahajbill/counter/pkg/upstream"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	gauges *metrics.GatewayMetrics,
	cartStore controllers.Pinger,
	client *upstream.Client,
	cartManager *cartsvc.Manager,
	catalogService catalog.Service,
	customerService customers.Service,
	orderService orders.Service,
	invoiceService invoices.Service,
	dashboardService dashboard.Service,
	reportService reports.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(gauges),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, cartStore))
	})

	r.Method("GET", "/metrics", gauges.Handler())

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(client, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Get("/ping", controllers.PrivatePing())
		r.Post("/v1/auth/logout", controllers.AuthLogout(client, logg))
		r.Get("/v1/auth/me", controllers.AuthMe(client, logg))

		r.Route("/v1/products", func(r chi.Router) {
			r.Get("/", controllers.CatalogList(catalogService, logg))
			r.Get("/low-stock", controllers.ProductLowStock(client, logg))
			r.Get("/{productId}", controllers.CatalogGet(catalogService, logg))
			r.Post("/", controllers.ProductCreate(client, logg))
			r.Put("/{productId}", controllers.ProductUpdate(client, logg))
			r.Delete("/{productId}", controllers.ProductDelete(client, logg))
			r.Post("/{productId}/stock", controllers.ProductAdjustStock(client, logg))
		})

		r.Route("/v1/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.CartFetch(cartManager, logg))
			r.Post("/items", cartcontrollers.CartAddItem(cartManager, catalogService, customerService, logg))
			r.Put("/items/{productId}", cartcontrollers.CartSetQuantity(cartManager, logg))
			r.Delete("/items/{productId}", cartcontrollers.CartRemoveItem(cartManager, logg))
			r.Post("/checkout", cartcontrollers.CartCheckout(cartManager, gauges, logg))
		})

		r.Route("/v1/customers", func(r chi.Router) {
			r.Get("/", controllers.CustomerList(customerService, logg))
			r.Post("/", controllers.CustomerCreate(customerService, logg))
			r.Get("/{customerId}", controllers.CustomerGet(customerService, logg))
			r.Put("/{customerId}", controllers.CustomerUpdate(customerService, logg))
			r.Delete("/{customerId}", controllers.CustomerDelete(customerService, logg))
			r.Get("/{customerId}/products", controllers.CustomerProducts(customerService, logg))
			r.Post("/{customerId}/prices", controllers.CustomerSetPrice(customerService, logg))
			r.Put("/{customerId}/prices", controllers.CustomerSetPricesBulk(customerService, logg))
			r.Delete("/{customerId}/prices/{productId}", controllers.CustomerClearPrice(customerService, logg))
		})

		r.Route("/v1/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(orderService, logg))
			r.Get("/{orderId}", controllers.OrderGet(orderService, logg))
			r.Patch("/{orderId}/status", controllers.OrderUpdateStatus(orderService, logg))
			r.Post("/{orderId}/convert", controllers.OrderConvertToInvoice(orderService, logg))
			r.Delete("/{orderId}", controllers.OrderDelete(orderService, logg))
		})

		r.Route("/v1/invoices", func(r chi.Router) {
			r.Get("/", controllers.InvoiceList(invoiceService, logg))
			r.Get("/{invoiceId}", controllers.InvoiceGet(invoiceService, logg))
			r.Patch("/{invoiceId}/status", controllers.InvoiceUpdateStatus(invoiceService, logg))
			r.Get("/{invoiceId}/pdf", controllers.InvoicePDF(invoiceService, logg))
			r.Delete("/{invoiceId}", controllers.InvoiceDelete(invoiceService, logg))
		})

		r.Route("/v1/dashboard", func(r chi.Router) {
			r.Get("/", controllers.DashboardOverview(dashboardService, logg))
			r.Get("/sales", controllers.DashboardSales(dashboardService, logg))
			r.Get("/inventory", controllers.DashboardInventory(dashboardService, logg))
		})

		r.Route("/v1/reports", func(r chi.Router) {
			r.Use(middleware.RequireRole("admin", logg))
			r.Get("/gstr-1", controllers.ReportGSTR1(reportService, logg))
			r.Get("/gstr-3b", controllers.ReportGSTR3B(reportService, logg))
			r.Get("/stock-summary", controllers.ReportStockSummary(reportService, logg))
			r.Get("/{kind}", controllers.ReportRanged(reportService, logg))
		})

		r.Route("/v1/data", func(r chi.Router) {
			r.Use(middleware.RequireRole("admin", logg))
			r.Post("/import/products", controllers.ImportCSV(client, "products", logg))
			r.Post("/import/customers", controllers.ImportCSV(client, "customers", logg))
			r.Get("/export/products", controllers.ExportProducts(client, logg))
			r.Get("/export/customers", controllers.ExportCustomers(client, logg))
			r.Get("/export/invoices", controllers.ExportInvoices(client, logg))
		})
	})

	return r
}
