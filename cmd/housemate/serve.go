package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/housemate/internal/auth"
	"github.com/mmynk/housemate/internal/config"
	"github.com/mmynk/housemate/internal/httpapi"
	"github.com/mmynk/housemate/internal/middleware"
	"github.com/mmynk/housemate/internal/notify"
	"github.com/mmynk/housemate/internal/service"
	"github.com/mmynk/housemate/internal/storage/sqlite"
	"github.com/mmynk/housemate/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the REST API and the Connect DashboardService on one port (HTTP/1.1 and h2c).",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}
			logging.SetupWith(logging.ParseLevel(cfg.LogLevel), logging.Format(cfg.LogFormat))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg)
		},
	}
}

func newPublisher(cfg *config.Config) notify.Publisher {
	if cfg.AMQPURL == "" {
		slog.Info("AMQP not configured, events will not be published")
		return notify.Nop{}
	}
	publisher, err := notify.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		slog.Error("Failed to connect to AMQP, events will not be published", "error", err)
		return notify.Nop{}
	}
	slog.Info("AMQP publisher ready", "exchange", cfg.AMQPExchange)
	return publisher
}

func runServer(ctx context.Context, cfg *config.Config) error {
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	notifier := notify.NewNotifier(store, newPublisher(cfg))
	defer notifier.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	mux := http.NewServeMux()
	httpapi.New(store, authenticator, jwtManager, notifier).Register(mux)

	dashboardPath, dashboardHandler := service.NewDashboardServiceHandler(
		service.NewDashboardService(store),
		connect.WithInterceptors(middleware.RequireAuth(jwtManager), middleware.LoggingInterceptor()),
	)
	mux.Handle(dashboardPath, dashboardHandler)

	chain := []func(http.Handler) http.Handler{middleware.RequestID, middleware.AccessLog}
	if cfg.MetricsEnabled {
		metrics := middleware.NewMetrics()
		mux.Handle("GET /metrics", metrics.Handler())
		chain = append(chain, metrics.Middleware)
	}
	chain = append(chain,
		middleware.CORS(cfg.CORSOrigin),
		middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware,
	)

	// Wrap with h2c for HTTP/2 without TLS (Connect clients may use it)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(middleware.Chain(mux, chain...), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}
