package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/rs/cors"

	"donbalon-gateway/internal/app/schedule"
	"donbalon-gateway/internal/config"
	httpserver "donbalon-gateway/internal/http"
	"donbalon-gateway/internal/http/handlers"
	"donbalon-gateway/internal/http/middleware"
	"donbalon-gateway/internal/logging"
	"donbalon-gateway/internal/metrics"
	"donbalon-gateway/internal/poller"
	"donbalon-gateway/internal/providers"
	"donbalon-gateway/internal/reports"
	"donbalon-gateway/internal/store"
)

var metricsSetup = metrics.Setup

// Refresher abstracts the background reload loop for testing.
type Refresher interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
	RefreshOnce(ctx context.Context) error
}

type Server struct {
	cfg             config.Config
	logger          *slog.Logger
	metrics         *metrics.Recorder
	store           *store.MemoryStore
	scheduleService *schedule.Service
	httpServer      httpServer
	metricsServer   httpServer
	refresher       Refresher
	metricsStop     func(context.Context) error
}

// New constructs a server with default provider and refresher wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithProvider(cfg, logger, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.BookingProvider) *Server {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.BookingProvider, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	if provider == nil {
		provider = newProviderFactory(logger, recorder).build(cfg)
	}

	memoryStore := store.NewMemoryStore()
	scheduleSvc := schedule.NewService(provider, memoryStore, logger)
	refresher := poller.New(scheduleSvc, logger, recorder, cfg.RefreshInterval)
	httpSrv := buildHTTPServer(cfg, scheduleSvc, provider, logger, recorder, refresher)

	return &Server{
		cfg:             cfg,
		logger:          logger,
		metrics:         recorder,
		store:           memoryStore,
		scheduleService: scheduleSvc,
		httpServer:      httpSrv,
		metricsServer:   metricsSrv,
		refresher:       refresher,
		metricsStop:     metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, scheduleSvc *schedule.Service, httpSrv httpServer, refresher Refresher) *Server {
	return &Server{
		cfg:             cfg,
		logger:          logger,
		scheduleService: scheduleSvc,
		httpServer:      httpSrv,
		refresher:       refresher,
	}
}

func buildHTTPServer(cfg config.Config, scheduleSvc *schedule.Service, provider providers.BookingProvider, logger *slog.Logger, recorder *metrics.Recorder, refresher Refresher) httpServer {
	var statusFn func() poller.Status
	var refreshFn func(context.Context) error
	if refresher != nil {
		statusFn = refresher.Status
		refreshFn = refresher.RefreshOnce
	}

	writer := reports.NewWriter(cfg.Reports.Dir, cfg.Reports.RetentionDays)
	handler := handlers.NewHandler(scheduleSvc, provider, writer, logger, statusFn, refreshFn, cfg.AdminToken)
	router := httpserver.NewRouter(handler)

	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)
	// The booking site runs on another origin in development.
	corsWrapper := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"*"},
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      corsWrapper.Handler(wrapped),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the refresher and HTTP server, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.refresher.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if err := s.refresher.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop refresher", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
