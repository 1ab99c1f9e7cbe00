package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/komsit37/invest/pkg/invest/growth"
	"github.com/komsit37/invest/pkg/invest/pipeline"
	"github.com/komsit37/invest/pkg/invest/source"
	"github.com/komsit37/invest/pkg/invest/thesis"
)

// Config holds server configuration
type Config struct {
	Addr string
	Log  zerolog.Logger
	// Source and DatasetSpec select the screener's dataset.
	Source        source.Source
	DatasetSpec   any
	Thesis        thesis.Service
	ScreenLatency time.Duration
	GrowthYears   int
}

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger

	screener      *pipeline.Runner
	datasetSpec   any
	thesis        thesis.Service
	screenLatency time.Duration
	growthYears   int
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	log := cfg.Log.With().Str("component", "server").Logger()
	src := cfg.Source
	if src == nil {
		src = source.Builtin{}
	}
	svc := cfg.Thesis
	if svc == nil {
		svc = thesis.NewGenerator(0, 0)
	}
	years := cfg.GrowthYears
	if years <= 0 {
		years = growth.DefaultYears
	}
	s := &Server{
		router:        chi.NewRouter(),
		log:           log,
		screener:      &pipeline.Runner{Source: src, Log: log},
		datasetSpec:   cfg.DatasetSpec,
		thesis:        svc,
		screenLatency: cfg.ScreenLatency,
		growthYears:   years,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/growth", s.handleGrowth)
		r.Post("/risk", s.handleRisk)
		r.Post("/rebalance", s.handleRebalance)

		r.Route("/screen", func(r chi.Router) {
			r.Post("/", s.handleScreen)
			r.Get("/presets", s.handleScreenPresets)
		})

		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/default", s.handlePortfolioDefault)
			r.Get("/presets", s.handlePortfolioPresets)
			r.Post("/report", s.handlePortfolioReport)
		})

		r.Post("/thesis", s.handleThesis)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
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
