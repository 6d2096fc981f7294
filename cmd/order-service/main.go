package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"

	"github.com/jcmexdev/venue-tabs/internal/order-service/app"
	"github.com/jcmexdev/venue-tabs/internal/order-service/domain"
	"github.com/jcmexdev/venue-tabs/internal/orderrpc"
	"github.com/jcmexdev/venue-tabs/internal/pkg/interceptors"
	"github.com/jcmexdev/venue-tabs/internal/pkg/telemetry"
)

// The development Order Service: an in-memory venue served over gRPC.
func main() {
	_ = godotenv.Load()
	telemetry.InitLogger(getEnv("LOG_LEVEL", "info"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.SetupTracer(ctx, getEnv("OTEL_SERVICE_NAME", "order-service"), getEnv("OTEL_ENABLED", "false") == "true")
	if err != nil {
		slog.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	addr := ":" + getEnv("PORT", "9090")
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		slog.Error("failed to listen", "addr", addr, "error", err)
		os.Exit(1)
	}

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.UnaryInterceptor(interceptors.TraceServerInterceptor()),
	)
	orderrpc.RegisterOrderServer(grpcServer, app.NewOrderServer(domain.NewSeededStore()))

	go func() {
		<-ctx.Done()
		slog.Info("order service shutting down")
		grpcServer.GracefulStop()
	}()

	slog.Info("order service gRPC running", "addr", addr)
	if err := grpcServer.Serve(lis); err != nil {
		slog.Error("failed to serve", "error", err)
		os.Exit(1)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
