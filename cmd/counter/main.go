package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/sahajbill/counter/api/controllers"
	"github.com/sahajbill/counter/api/routes"
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
	"github.com/sahajbill/counter/pkg/store"
	"github.com/sahajbill/counter/pkg/upstream"
)

type cartStore interface {
	store.Store
	controllers.Pinger
	io.Closer
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "counter"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "counter",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	snapshots, err := openCartStore(ctx, cfg)
	if err != nil {
		logg.Error(ctx, "failed to open cart store", err)
		os.Exit(1)
	}

	client, err := upstream.New(cfg.Upstream)
	if err != nil {
		logg.Error(ctx, "failed to build billing client", err)
		os.Exit(1)
	}

	cartManager, err := cartsvc.NewManager(snapshots, client)
	if err != nil {
		logg.Error(ctx, "failed to build cart", err)
		os.Exit(1)
	}
	if err := cartManager.Load(ctx); err != nil {
		logg.Error(ctx, "failed to restore cart", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(client)
	if err != nil {
		logg.Error(ctx, "failed to build catalog service", err)
		os.Exit(1)
	}
	customerService, err := customers.NewService(client)
	if err != nil {
		logg.Error(ctx, "failed to build customer service", err)
		os.Exit(1)
	}
	orderService, err := orders.NewService(client)
	if err != nil {
		logg.Error(ctx, "failed to build order service", err)
		os.Exit(1)
	}
	invoiceService, err := invoices.NewService(client)
	if err != nil {
		logg.Error(ctx, "failed to build invoice service", err)
		os.Exit(1)
	}
	dashboardService, err := dashboard.NewService(client)
	if err != nil {
		logg.Error(ctx, "failed to build dashboard service", err)
		os.Exit(1)
	}
	reportService, err := reports.NewService(client)
	if err != nil {
		logg.Error(ctx, "failed to build report service", err)
		os.Exit(1)
	}

	gauges := metrics.NewGatewayMetrics()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	startCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"terminal": cfg.App.TerminalID,
		"backend":  cfg.Cart.Backend,
	})
	logg.Info(startCtx, "starting counter gateway")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg, logg, gauges, snapshots, client, cartManager,
			catalogService, customerService, orderService,
			invoiceService, dashboardService, reportService,
		),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logg.Info(startCtx, "shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(startCtx, "gateway stopped unexpectedly", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	closeErr := multierr.Append(
		server.Shutdown(shutdownCtx),
		snapshots.Close(),
	)
	if closeErr != nil {
		logg.Error(startCtx, "shutdown finished with errors", closeErr)
		os.Exit(1)
	}
	logg.Info(startCtx, "gateway stopped")
}

// openCartStore picks the persistence backend. The sqlite file is the
// default; redis serves setups where several terminals share a host.
func openCartStore(ctx context.Context, cfg *config.Config) (cartStore, error) {
	if cfg.Cart.UseRedis() {
		return store.NewRedisStore(ctx, cfg.Redis, cfg.App.TerminalID)
	}
	return store.NewSQLiteStore(cfg.Cart.SQLitePath, cfg.App.TerminalID)
}
