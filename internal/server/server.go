// Package server exposes validation over HTTP.
//
// Routes:
//
//	POST /api/validate  multipart upload: field "document" (.docx), optional "documentType"
//	GET  /api/health    liveness check
//	GET  /metrics       Prometheus metrics
//
// Uploads are held in memory for the duration of the request and never
// written to storage.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/stylecheck/guide"
	"github.com/tsawler/stylecheck/internal/config"
	"github.com/tsawler/stylecheck/internal/metrics"
	"github.com/tsawler/stylecheck/validate"
)

// Config holds the dependencies of a Server.
type Config struct {
	Port           int
	MaxUploadBytes int64
	Guide          *guide.StyleGuide
	Logger         *slog.Logger
	// Recorder receives validation measurements; nil disables them.
	Recorder validate.Recorder
}

// Server is the HTTP front end of the checker.
type Server struct {
	port      int
	maxUpload int64
	guide     *guide.StyleGuide
	logger    *slog.Logger
	recorder  validate.Recorder
	router    chi.Router
}

// New creates a Server and registers its routes.
func New(cfg Config) *Server {
	s := &Server{
		port:      cfg.Port,
		maxUpload: cfg.MaxUploadBytes,
		guide:     cfg.Guide,
		logger:    cfg.Logger,
		recorder:  cfg.Recorder,
	}
	if s.maxUpload <= 0 {
		s.maxUpload = config.DefaultMaxUploadBytes
	}
	if s.guide == nil {
		s.guide = guide.Default()
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewMux()
	r.Use(
		requestID,
		middleware.Recoverer,
		metrics.Middleware,
		s.logRequests,
	)
	r.Get("/api/health", s.handleHealth)
	r.Post("/api/validate", s.handleValidate)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	s.router = r

	return s
}

// Handler returns the server's router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve listens on the configured port and blocks until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting server", "addr", addr)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
