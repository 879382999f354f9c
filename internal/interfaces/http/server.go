// Package http hosts the local-only HTTP surface of the caution service:
// the JSON API the static site calls in place of a real backend.
package http

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/socialcaution/cautiond/internal/feed"
	httpContracts "github.com/socialcaution/cautiond/internal/http"
	"github.com/socialcaution/cautiond/internal/interfaces/http/handlers"
	"github.com/socialcaution/cautiond/internal/net/ratelimit"
)

// Server represents the read-mostly HTTP server.
type Server struct {
	router   *mux.Router
	server   *http.Server
	handlers *handlers.Handlers
	limiter  *ratelimit.Limiter
	config   ServerConfig
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	RateRPS      float64
	RateBurst    int
}

// DefaultServerConfig returns the default server configuration. Local-only
// by default: the API exists for the demo site, not the open network.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         "127.0.0.1",
		Port:         8080,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		RateRPS:      25,
		RateBurst:    50,
	}
}

// NewServer creates an HTTP server serving the given query layer.
func NewServer(config ServerConfig, svc *feed.Service, version string, session httpContracts.SessionHealth) (*Server, error) {
	// Check if port is available
	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("port %d is busy or unavailable: %w", config.Port, err)
	}
	listener.Close()

	server := &Server{
		router:   mux.NewRouter(),
		handlers: handlers.NewHandlers(svc, version, session),
		limiter:  ratelimit.NewLimiter(config.RateRPS, config.RateBurst),
		config:   config,
	}

	server.setupRoutes()

	server.server = &http.Server{
		Addr:         addr,
		Handler:      server.router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return server, nil
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Middleware for all routes
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.requestLoggingMiddleware)
	s.router.Use(s.metricsMiddleware)
	s.router.Use(s.rateLimitMiddleware)
	s.router.Use(s.timeoutMiddleware)
	s.router.Use(s.corsMiddleware)

	// Observability endpoints bypass the JSON content type middleware
	if httpContracts.DefaultMetrics != nil {
		s.router.Handle("/metrics", httpContracts.DefaultMetrics.MetricsHandler()).Methods("GET")
	}

	// API routes (JSON only)
	api := s.router.PathPrefix("/").Subrouter()
	api.Use(s.jsonContentTypeMiddleware)

	api.HandleFunc("/health", s.handlers.Health).Methods("GET")
	api.HandleFunc("/metrics/summary", s.metricsSummary).Methods("GET")

	// Persona catalog and session
	api.HandleFunc("/personas", s.handlers.Personas).Methods("GET")
	api.HandleFunc("/personas/{name}", s.handlers.PersonaByName).Methods("GET")
	api.HandleFunc("/session/persona", s.handlers.CurrentPersona).Methods("GET")
	api.HandleFunc("/session/persona", s.handlers.SelectPersona).Methods("PUT")
	api.HandleFunc("/session/persona", s.handlers.ClearPersona).Methods("DELETE")

	// Caution feed
	api.HandleFunc("/cautions", s.handlers.Cautions).Methods("GET")
	api.HandleFunc("/cautions/stats", s.handlers.Stats).Methods("GET")
	api.HandleFunc("/cautions/{id}", s.handlers.CautionByID).Methods("GET")
	api.HandleFunc("/categories", s.handlers.Categories).Methods("GET")

	s.router.NotFoundHandler = http.HandlerFunc(s.handlers.NotFound)
}

// metricsSummary serves the JSON counter snapshot.
func (s *Server) metricsSummary(w http.ResponseWriter, r *http.Request) {
	if httpContracts.DefaultMetrics == nil {
		http.Error(w, `{"error":"metrics_disabled"}`, http.StatusServiceUnavailable)
		return
	}
	summary := httpContracts.DefaultMetrics.Summary()
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"success":%.0f,"no_persona":%.0f,"errors":%.0f}`,
		summary.Success, summary.NoPersona, summary.Errors)
}

// requestIDMiddleware adds a unique request ID to each request.
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()[:8]
		ctx := context.WithValue(r.Context(), httpContracts.RequestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLoggingMiddleware logs all requests with structured format.
func (s *Server) requestLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID, _ := r.Context().Value(httpContracts.RequestIDKey).(string)

		// Capture response status
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}
		next.ServeHTTP(wrapper, r)

		log.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapper.statusCode).
			Dur("duration", time.Since(start)).
			Str("remote", r.RemoteAddr).
			Msg("HTTP request")
	})
}

// metricsMiddleware records request duration and in-flight count.
func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpContracts.DefaultMetrics
		if m == nil {
			next.ServeHTTP(w, r)
			return
		}

		endpoint := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				endpoint = tmpl
			}
		}

		m.RequestsInFlight.Inc()
		defer m.RequestsInFlight.Dec()

		start := time.Now()
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}
		next.ServeHTTP(wrapper, r)

		m.RequestDuration.WithLabelValues(endpoint, fmt.Sprintf("%d", wrapper.statusCode)).
			Observe(time.Since(start).Seconds())
	})
}

// rateLimitMiddleware enforces the per-client token bucket.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			client = host
		}
		if !s.limiter.Allow(client) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprintf(w, `{"error":"Too Many Requests","code":%q}`, httpContracts.CodeRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// timeoutMiddleware enforces request timeouts.
func (s *Server) timeoutMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// corsMiddleware adds CORS headers for the locally served demo site.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Only allow localhost origins
		origin := r.Header.Get("Origin")
		if strings.Contains(origin, "localhost") || strings.Contains(origin, "127.0.0.1") {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// jsonContentTypeMiddleware sets JSON content type for API responses.
func (s *Server) jsonContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	log.Info().Str("addr", s.GetAddress()).Msg("Starting HTTP server (local-only)")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// GetAddress returns the server address.
func (s *Server) GetAddress() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// Router exposes the configured router, used by handler tests.
func (s *Server) Router() *mux.Router {
	return s.router
}

// responseWrapper captures HTTP status codes for logging and metrics.
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
