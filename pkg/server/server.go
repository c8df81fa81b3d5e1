// Package server exposes the diagram pipeline over HTTP.
//
// Routes:
//
//	GET    /healthz
//	POST   /v1/layout                  document → layout model JSON
//	POST   /v1/render?format=svg       document → artifact
//	POST   /v1/extract                 free text → canonical graph JSON
//	POST   /v1/diagrams                document → stored diagram
//	GET    /v1/diagrams                newest stored diagrams
//	GET    /v1/diagrams/{id}
//	DELETE /v1/diagrams/{id}
//	GET    /v1/diagrams/{id}/render?format=png
//
// Layout and render routes accept option overrides as query parameters:
// engine, width, height, lane_gap, lane_padding, autolayout, break_cycles,
// theme, scale and icons.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jbass698-121/aveva-diagram-style/pkg/pipeline"
	"github.com/jbass698-121/aveva-diagram-style/pkg/store"
)

const (
	DefaultMaxBody = 1 << 20
	DefaultTimeout = 30 * time.Second
	shutdownGrace  = 5 * time.Second
)

// Server serves the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	store    store.Store
	defaults pipeline.Options
	logger   *log.Logger
	maxBody  int64
	timeout  time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithStore sets the diagram store. The default is an in-memory store.
func WithStore(s store.Store) Option { return func(srv *Server) { srv.store = s } }

// WithDefaults sets the options that query parameters override.
func WithDefaults(opts pipeline.Options) Option { return func(srv *Server) { srv.defaults = opts } }

// WithMaxBody limits request bodies to n bytes.
func WithMaxBody(n int64) Option { return func(srv *Server) { srv.maxBody = n } }

// WithTimeout bounds the handling time of each request.
func WithTimeout(d time.Duration) Option { return func(srv *Server) { srv.timeout = d } }

// New returns a server running requests through runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	s := &Server{
		runner:  runner,
		logger:  logger,
		maxBody: DefaultMaxBody,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = store.NewMemoryStore()
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBody
	}
	if s.timeout <= 0 {
		s.timeout = DefaultTimeout
	}
	return s
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
		r.Post("/extract", s.handleExtract)
		r.Route("/diagrams", func(r chi.Router) {
			r.Post("/", s.handleCreateDiagram)
			r.Get("/", s.handleListDiagrams)
			r.Get("/{id}", s.handleGetDiagram)
			r.Delete("/{id}", s.handleDeleteDiagram)
			r.Get("/{id}/render", s.handleRenderDiagram)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return s.store.Close(shutdownCtx)
}
