package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	appmatches "github.com/preston-bernstein/matchboard/internal/app/matches"
	appteams "github.com/preston-bernstein/matchboard/internal/app/teams"
	"github.com/preston-bernstein/matchboard/internal/config"
	httpserver "github.com/preston-bernstein/matchboard/internal/http"
	"github.com/preston-bernstein/matchboard/internal/http/handlers"
	"github.com/preston-bernstein/matchboard/internal/http/middleware"
	"github.com/preston-bernstein/matchboard/internal/logging"
	"github.com/preston-bernstein/matchboard/internal/metrics"
	"github.com/preston-bernstein/matchboard/internal/store"
)

var (
	metricsSetup = metrics.Setup
	storeOpen    = store.Open
)

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	backend       store.Backend
	collections   *store.Collections
	matches       *appmatches.Service
	teams         *appteams.Service
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// New opens the configured storage backend and wires services, routes, and telemetry.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, nil)

	backend, err := storeOpen(logging.WithLogger(ctx, logger), cfg.Storage)
	if err != nil {
		if metricsShutdown != nil {
			_ = metricsShutdown(ctx)
		}
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}

	srv := newServerWithBackend(cfg, logger, backend, recorder)
	srv.metricsServer = metricsSrv
	srv.metricsStop = metricsShutdown
	return srv, nil
}

func newServerWithBackend(cfg config.Config, logger *slog.Logger, backend store.Backend, recorder *metrics.Recorder) *Server {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	if recorder == nil {
		recorder = metrics.NewRecorder()
	}

	cols := store.NewCollections(backend, logger, recorder)
	ids := store.NewIDAllocator(cfg.Storage.IDStrategy, backend)
	matchSvc := appmatches.NewService(cols, ids, cfg.LogoURLPrefix)
	teamSvc := appteams.NewService(cols, ids, cfg.LogoURLPrefix)

	return &Server{
		cfg:         cfg,
		logger:      logger,
		metrics:     recorder,
		backend:     backend,
		collections: cols,
		matches:     matchSvc,
		teams:       teamSvc,
		httpServer:  buildHTTPServer(cfg, cols, matchSvc, teamSvc, logger, recorder),
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, backend store.Backend) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		backend:    backend,
		httpServer: httpSrv,
	}
}

func buildHTTPServer(cfg config.Config, cols *store.Collections, matchSvc *appmatches.Service, teamSvc *appteams.Service, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	handler := handlers.NewHandler(matchSvc, teamSvc, cols.Ping, logger)
	router := httpserver.NewRouter(handler, cfg.LogoDir)
	wrapped := middleware.CORS(cfg.CORSOrigin, middleware.LoggingMiddleware(logger, recorder, router))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the HTTP servers, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting",
			slog.String("addr", s.httpServer.Addr()),
			slog.String(logging.FieldBackend, s.cfg.Storage.Backend),
		)
	}
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
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.backend != nil {
		if err := s.backend.Close(); err != nil && s.logger != nil {
			s.logger.Warn("storage close failed", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
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
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", handler)
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           mux,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
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

// Collections exposes the storage handle.
func (s *Server) Collections() *store.Collections {
	return s.collections
}
