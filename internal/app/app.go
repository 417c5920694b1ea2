package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rfrcli/internal/config"
	"rfrcli/internal/fetch"
	"rfrcli/internal/middleware"
	"rfrcli/internal/scrape"
	"rfrcli/internal/services"
	transporthttp "rfrcli/internal/transport/http"
)

// App is the assembled web application.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	router chi.Router
	server *http.Server
}

// New wires the pipeline and the HTTP surface from configuration.
func New(cfg *config.Config, version string, logger *slog.Logger) (*App, error) {
	paths := cfg.Paths()
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("prepare data directories: %w", err)
	}

	scraper := scrape.NewScraper(&http.Client{Timeout: cfg.Scrape.RequestTimeout}, logger)
	fetcher := fetch.New(&http.Client{Timeout: cfg.Scrape.DownloadTimeout}, logger)
	service := services.NewCurveService(scraper, fetcher, cfg.Scrape.Pages, paths, logger)

	router := buildRouter(cfg, version, service, logger)

	app := &App{
		cfg:    cfg,
		logger: logger,
		router: router,
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
	}
	return app, nil
}

func buildRouter(cfg *config.Config, version string, service transporthttp.CurveServiceInterface, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst, logger).Handler)

	curveHandler := transporthttp.NewCurveHandler(service, logger)
	healthHandler := transporthttp.NewHealthHandler(version)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/", curveHandler.Routes())
		r.Get("/health", healthHandler.HealthCheck)
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Router exposes the assembled router, mainly for tests.
func (a *App) Router() chi.Router {
	return a.router
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", slog.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	a.logger.Info("shutting down http server",
		slog.Duration("timeout", a.cfg.Server.ShutdownTimeout))
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}
