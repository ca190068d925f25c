package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	httpapi "github.com/i474232898/gas-sensor-assistant/internal/api/http"
	"github.com/i474232898/gas-sensor-assistant/internal/assistant"
	"github.com/i474232898/gas-sensor-assistant/internal/metrics"
	"github.com/i474232898/gas-sensor-assistant/internal/scheduler"
	"github.com/i474232898/gas-sensor-assistant/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook server",
		Long: `Start the HTTP server exposing POST /process_command for the agent,
GET / and GET /health for liveness and GET /metrics for Prometheus.

If the sensor store cannot be initialized the server still starts and
answers data intents with HTTP 500.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := loadConfig(os.Stdout)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	m := metrics.New()

	// Store handle is built once; on failure it is the Unavailable variant.
	storeOpts := cfg.Store
	storeOpts.Breaker.OnStateChange = m.BreakerStateChanged
	sensorStore := store.Open(ctx, storeOpts)

	service := assistant.NewService(sensorStore, cfg.StoreTimeout).WithObserver(m)

	// Periodic reachability probe for /health.
	sched := scheduler.New(sensorStore, cfg.ProbeInterval, m.SetStoreUp)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               httpapi.ServiceName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${method} ${path} | ${locals:requestid}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSAllowOrigins}))

	httpapi.RegisterRoutes(app, httpapi.Deps{
		Service: service,
		Health:  sched,
		Metrics: m,
	})

	listenErr := make(chan error, 1)
	go func() {
		slog.Info("listening", "port", cfg.Port)
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	// Wait for termination signal or a listener failure
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-listenErr:
		if err == nil {
			return nil
		}
		slog.Error("fiber server stopped", "error", err)
		return fmt.Errorf("listen on port %s: %w", cfg.Port, err)
	case <-sigCtx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("error during shutdown", "error", err)
	}
	return nil
}
