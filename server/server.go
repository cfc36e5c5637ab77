// Package server exposes a record source as a JSON HTTP API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/etnz/investlog"
)

// Config holds server configuration
type Config struct {
	Addr     string // listen address, like ":8080"
	Log      zerolog.Logger
	Source   investlog.Source
	Currency string
	DevMode  bool
	// CheckSchedule is the cron schedule of the ledger integrity check,
	// empty to disable it.
	CheckSchedule string
	// Now returns the reference day of relative dates, defaults to today.
	Now func() investlog.Date
}

// Server represents the HTTP server
type Server struct {
	router    *chi.Mux
	server    *http.Server
	log       zerolog.Logger
	addr      string
	scheduler *Scheduler
}

// New creates a new HTTP server
func New(cfg Config) (*Server, error) {
	if cfg.Now == nil {
		cfg.Now = investlog.Today
	}
	if cfg.Currency == "" {
		cfg.Currency = investlog.DefaultCurrency
	}
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "server").Logger(),
		addr:   cfg.Addr,
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes(NewHandler(cfg.Source, cfg.Currency, cfg.Now, cfg.Log))

	if cfg.CheckSchedule != "" {
		s.scheduler = NewScheduler(cfg.Log)
		if err := s.scheduler.AddJob(cfg.CheckSchedule, &integrityCheck{source: cfg.Source, currency: cfg.Currency, log: s.log}); err != nil {
			return nil, fmt.Errorf("invalid check schedule %q: %w", cfg.CheckSchedule, err)
		}
	}

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler returns the root handler, with every middleware.
func (s *Server) Handler() http.Handler { return s.router }

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(requestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	// CORS for the browser UI
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(h *Handler) {
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", handleHealth)
		h.RegisterRoutes(r)
	})
}

// Start starts the HTTP server and the scheduler. It blocks until the server
// is shut down.
func (s *Server) Start() error {
	if s.scheduler != nil {
		s.scheduler.Start()
	}
	s.log.Info().Str("addr", s.addr).Msg("Starting HTTP server")
	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	return s.server.Shutdown(ctx)
}

// requestID tags each request with the X-Request-ID header, or a new uuid.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(middleware.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(middleware.RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
