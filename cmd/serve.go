package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	appLogger "github.com/Riyasinha-01/Voyage/app/logger"
	appMiddleware "github.com/Riyasinha-01/Voyage/app/middleware"
	"github.com/Riyasinha-01/Voyage/app/observability/metrics"
	"github.com/Riyasinha-01/Voyage/app/tracer"
	"github.com/Riyasinha-01/Voyage/config"
	"github.com/Riyasinha-01/Voyage/internal/container"
	"github.com/Riyasinha-01/Voyage/internal/router"
)

const serviceName = "Voyage"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		return serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context) error {
	// --- Observability ---
	tp, mp, err := tracer.InitTracingAndMetrics(logger, serviceName, cfg.Handlers.Prometheus.Port)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Error("Tracer provider shutdown failed", slog.Any("error", err))
		}
		if err := mp.Shutdown(shutdownCtx); err != nil {
			logger.Error("Meter provider shutdown failed", slog.Any("error", err))
		}
	}()
	metrics.InitAppMetrics()

	// --- Dependency Injection ---
	c, err := container.NewContainer(&cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to build container: %w", err)
	}
	defer c.Close()

	mainRouter := router.SetupRouter(&router.Config{
		StructurerHandler:      c.StructurerHandler,
		DestinationsHandler:    c.DestinationsHandler,
		ImagesHandler:          c.ImagesHandler,
		PlannerHandler:         c.PlannerHandler,
		ChatHandler:            c.ChatHandler,
		AuthenticateMiddleware: appMiddleware.Authenticate(cfg.Auth, logger),
		AllowedOrigins:         cfg.Cors.AllowedOrigins,
	})

	timeout := requestTimeout(cfg)

	mux := chi.NewMux()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(appLogger.StructuredLogger(logger))
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(middleware.Timeout(timeout))
	mux.Use(middleware.Compress(5, "application/json", "text/html"))
	mux.Mount("/", mainRouter)

	// --- HTTP Server Setup ---
	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:    serverAddress,
		Handler: mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: timeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress), slog.String("mode", cfg.Mode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received, starting graceful shutdown...")
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
		return err
	}
	logger.Info("HTTP server gracefully stopped")
	return nil
}

// requestTimeout bounds one API request. It always leaves room for a chat
// backend call to finish and be decorated.
func requestTimeout(c config.Config) time.Duration {
	timeout := c.Server.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if backend := c.ChatBackend.Timeout + 10*time.Second; c.ChatBackend.Timeout > 0 && timeout < backend {
		timeout = backend
	}
	return timeout
}
