// Package httpapi provides the HTTP server and routing for the dashboard API.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/trendfolio/trendfolio-backend/internal/usecase/report"
	"github.com/trendfolio/trendfolio-backend/internal/usecase/tracker"
)

// Config holds server configuration
type Config struct {
	Log      zerolog.Logger
	Port     int
	APIToken string
	Reports  *report.ReportService
	Tracker  *tracker.TrackerService
}

// Server represents the HTTP server
type Server struct {
	router  *chi.Mux
	server  *http.Server
	log     zerolog.Logger
	reports *report.ReportService
	tracker *tracker.TrackerService
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		log:     cfg.Log,
		reports: cfg.Reports,
		tracker: cfg.Tracker,
	}

	s.router.Use(middleware.Recoverer)
	s.router.Use(RequestLogger(cfg.Log))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	s.router.Get("/healthz", s.handleHealthz)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.APIToken))

		r.Get("/portfolio/summary", s.handleGetPortfolioSummary)
		r.Get("/portfolio/holdings", s.handleListHoldings)
		r.Post("/portfolio/holdings", s.handleAddHolding)
		r.Get("/accuracy/report", s.handleGetAccuracyReport)
		r.Post("/predictions", s.handleRecordPrediction)
		r.Post("/predictions/{id}/resolve", s.handleResolvePrediction)
		r.Get("/performance/{symbol}", s.handleGetPerformanceSeries)
	})

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// Router exposes the underlying router, primarily for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins serving HTTP requests and blocks until the server stops
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP server listening")
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
