// Package app wires the dashboard server together: configuration, logging,
// the WebSocket hub, the operation manager, and the chi router.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chipphillips/federal-employment-analysis/internal/config"
	"github.com/chipphillips/federal-employment-analysis/internal/infrastructure"
	"github.com/chipphillips/federal-employment-analysis/internal/metrics"
	custommw "github.com/chipphillips/federal-employment-analysis/internal/middleware"
	"github.com/chipphillips/federal-employment-analysis/internal/operations"
	transporthttp "github.com/chipphillips/federal-employment-analysis/internal/transport/http"
	"github.com/chipphillips/federal-employment-analysis/internal/websocket"
)

// App is the assembled dashboard server.
type App struct {
	config  *config.Config
	logger  *slog.Logger
	hub     *websocket.Hub
	manager *operations.Manager
	server  *http.Server
}

// New builds the application from configuration.
func New(cfg *config.Config) (*App, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	hub := websocket.NewHub(logger)

	manager := operations.NewManager(operations.ManagerConfig{
		RawFile:       cfg.GetRawFile(),
		OutDir:        cfg.GetProcessedDir(),
		TopAgencies:   cfg.Pipeline.TopAgencies,
		Timeout:       cfg.Pipeline.Timeout,
		WriteDataJS:   cfg.Pipeline.WriteDataJS,
		WriteWorkbook: cfg.Pipeline.WriteWorkbook,
	}, hub, logger)

	a := &App{
		config:  cfg,
		logger:  logger,
		hub:     hub,
		manager: manager,
	}

	a.server = &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        a.routes(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return a, nil
}

// Manager exposes the operation manager for CLI use.
func (a *App) Manager() *operations.Manager {
	return a.manager
}

// Logger exposes the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

func (a *App) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)
	r.Use(custommw.StructuredLogger(a.logger))
	r.Use(custommw.Recoverer(a.logger))
	r.Use(custommw.SecurityHeaders)
	r.Use(custommw.Metrics)
	r.Use(custommw.Compress(5))

	if a.config.Security.RateLimit.Enabled {
		limiter := custommw.NewRateLimiter(
			a.config.Security.RateLimit.RPS,
			a.config.Security.RateLimit.Burst,
			a.logger,
		)
		r.Use(limiter.Handler)
	}

	dataHandler := transporthttp.NewDataHandler(a.config.GetProcessedDir(), a.logger)
	opsHandler := transporthttp.NewOperationsHandler(a.manager, a.logger)
	healthHandler := transporthttp.NewHealthHandler()
	wsHandler := transporthttp.NewWebSocketHandler(a.hub, a.logger)
	htmlHandler := transporthttp.NewHTMLHandler(a.config.GetWebDir(), a.config.GetProcessedDir(), a.logger)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/health", healthHandler.Routes())
		r.Mount("/data", dataHandler.Routes())
		r.Mount("/operations", opsHandler.Routes())
	})

	r.Handle("/ws", wsHandler)
	r.Handle("/metrics", metrics.Handler())
	r.NotFound(htmlHandler.ServeHTTP)

	return r
}

// Run starts the hub and the HTTP server, blocking until ctx is cancelled,
// then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	a.hub.Start()
	defer a.hub.Stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("dashboard server listening",
			slog.Int("port", a.config.Server.Port),
			slog.String("web_dir", a.config.GetWebDir()))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	infrastructure.CloseLogFile()
	return nil
}
