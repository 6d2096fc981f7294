package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/jcmexdev/venue-tabs/internal/api-gateway/config"
	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/catalog"
	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/ports"
	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/tab"
	"github.com/jcmexdev/venue-tabs/internal/api-gateway/infra/adapters/service"
	"github.com/jcmexdev/venue-tabs/internal/api-gateway/infra/httpx"
	"github.com/jcmexdev/venue-tabs/internal/coordinator/tablog/sqlite"
	"github.com/jcmexdev/venue-tabs/internal/orderrpc"
	"github.com/jcmexdev/venue-tabs/internal/pkg/cache"
	"github.com/jcmexdev/venue-tabs/internal/pkg/interceptors"
	"github.com/jcmexdev/venue-tabs/internal/pkg/telemetry"
)

func main() {
	if err := run(); err != nil {
		slog.Error("tab gateway stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}
	telemetry.InitLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.SetupTracer(ctx, cfg.ServiceName, cfg.OtelEnabled)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	orderService, closer, err := newOrderService(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	var productCache cache.Cache
	if cfg.RedisAddr != "" {
		productCache = cache.NewRedisCache(cfg.RedisAddr, "tab-gateway")
	} else {
		productCache = cache.NewMemoryCache("tab-gateway")
	}

	metrics := telemetry.NewMetrics()
	opts := []tab.Option{
		tab.WithCatalog(catalog.New(orderService, productCache, cfg.CatalogTTL)),
		tab.WithMetrics(metrics),
		tab.WithMutationTimeout(cfg.MutationTimeout),
	}

	var journal *sqlite.Repository
	if cfg.TabLogPath != "" {
		journal, err = sqlite.Open(cfg.TabLogPath)
		if err != nil {
			return err
		}
		defer journal.Close()
		opts = append(opts, tab.WithJournal(journal))
	}

	handler := httpx.NewHandler(orderService, tab.NewManager(orderService, opts...), metrics)
	if journal != nil {
		handler.WithJournal(journal)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpx.NewRouter(handler, metrics.Handler()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("tab gateway running", "addr", cfg.HTTPAddr, "transport", cfg.OrderTransport)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
	}
	return nil
}

// newOrderService builds the Order Service client for the configured
// transport. The returned closer releases its connection.
func newOrderService(cfg *config.Config) (ports.OrderService, io.Closer, error) {
	switch cfg.OrderTransport {
	case config.TransportREST:
		return service.NewRESTOrderService(cfg.OrderServiceURL, nil), io.NopCloser(nil), nil
	case config.TransportMemory:
		slog.Warn("using the in-memory order service; state is lost on restart")
		return service.NewFakeOrderService(nil), io.NopCloser(nil), nil
	default:
		conn, err := grpc.NewClient(cfg.OrderServiceAddr,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
			grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
			grpc.WithUnaryInterceptor(interceptors.UnaryClientInterceptor()),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to %s: %w", cfg.OrderServiceAddr, err)
		}
		return service.NewGRPCOrderService(orderrpc.NewOrderClient(conn)), conn, nil
	}
}
