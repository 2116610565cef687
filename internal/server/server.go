// Package server exposes the word-cloud pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz      liveness probe
//	POST /v1/layout    JSON records -> layout document
//	POST /v1/render    JSON records -> SVG (or JSON with "formats": ["json"])
//
// Request bodies decode into [pipeline.Options]; fields left unset take their
// values from the loaded wordcloud.toml. Every response carries an
// X-Request-ID header.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/wordcloud/pkg/config"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

const shutdownTimeout = 10 * time.Second

// Server serves the HTTP API.
type Server struct {
	runner *pipeline.Runner
	cfg    *config.Config
	logger *log.Logger
	router chi.Router
}

// New builds a Server. A nil cfg uses [config.Defaults]; a nil logger uses
// the default charm logger.
func New(runner *pipeline.Runner, cfg *config.Config, logger *log.Logger) *Server {
	if cfg == nil {
		d := config.Defaults()
		cfg = &d
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, cfg: cfg, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
	})
	return r
}

// ListenAndServe serves on cfg.Server.Addr until ctx is canceled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
