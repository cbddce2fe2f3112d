package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/tradeinsight/analytics/internal/config"
	"github.com/tradeinsight/analytics/internal/database"
	"github.com/tradeinsight/analytics/internal/marketdata"
	"github.com/tradeinsight/analytics/internal/modules/patterns"
	"github.com/tradeinsight/analytics/internal/modules/risk"
	"github.com/tradeinsight/analytics/internal/registry"
)

// Config holds server configuration
type Config struct {
	Port     int
	Log      zerolog.Logger
	DB       *database.DB
	Config   *config.Config
	Profiles *risk.ProfileStore
	DevMode  bool
}

// Server represents the HTTP server
type Server struct {
	router   *chi.Mux
	server   *http.Server
	log      zerolog.Logger
	db       *database.DB
	cfg      *config.Config
	profiles *risk.ProfileStore
	models   *registry.Registry
	started  time.Time
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		log:      cfg.Log.With().Str("component", "server").Logger(),
		db:       cfg.DB,
		cfg:      cfg.Config,
		profiles: cfg.Profiles,
		models:   registry.New(),
		started:  time.Now(),
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// Timeout
	s.router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, http.StatusNotFound, "route not found")
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Health check
	s.router.Get("/health", s.handleHealth)

	// API routes
	s.router.Route("/api", func(r chi.Router) {
		// System
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.handleSystemStatus)
		})

		// Analysis
		r.Route("/analyze", func(r chi.Router) {
			r.Post("/patterns", func(w http.ResponseWriter, req *http.Request) {
				s.patternHandler().HandleAnalyze(w, req)
			})
			r.Post("/scenarios", func(w http.ResponseWriter, req *http.Request) {
				s.riskHandler().HandleScenarios(w, req)
			})
		})

		// Risk
		r.Route("/calculate", func(r chi.Router) {
			r.Post("/risk", func(w http.ResponseWriter, req *http.Request) {
				s.riskHandler().HandleCalculate(w, req)
			})
		})
	})
}

// patternHandler lazily constructs the pattern-analysis handler.
func (s *Server) patternHandler() *patterns.Handler {
	return s.models.Get("pattern_detector", func() interface{} {
		history := marketdata.NewHistoryStore(s.cfg.HistoryDir, s.log)
		provider := marketdata.NewProvider(s.cfg.ProviderURL, s.log)
		data := marketdata.NewService(history, provider, s.log)

		return patterns.NewHandler(
			patterns.NewService(s.log),
			patterns.NewReliabilityScorer(),
			data,
			s.log,
		)
	}).(*patterns.Handler)
}

// riskHandler lazily constructs the risk-calculation handler.
func (s *Server) riskHandler() *risk.Handler {
	return s.models.Get("risk_calculator", func() interface{} {
		cfg := risk.DefaultConfig()
		cfg.AccountBalance = s.cfg.AccountBalance
		cfg.MonteCarloTrials = s.cfg.MonteCarloTrials

		return risk.NewHandler(risk.NewCalculator(s.profiles, cfg, s.log), s.log)
	}).(*risk.Handler)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
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
