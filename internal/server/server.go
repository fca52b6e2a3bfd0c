// Package server exposes the REST API over spots, forecasts and the
// cross-spot ranking.
package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/lucasinocencio1/surf-forecast/internal/observability"
)

// Config holds the HTTP server tuning.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Server wires the router, middleware and handlers into an HTTP server.
type Server struct {
	router   *mux.Router
	server   *http.Server
	handlers *Handlers
	metrics  *observability.Metrics
	logger   zerolog.Logger
}

// New creates the API server around a set of handlers.
func New(cfg Config, handlers *Handlers, metrics *observability.Metrics, logger zerolog.Logger) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		handlers: handlers,
		metrics:  metrics,
		logger:   logger,
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.metricsMiddleware)

	api := s.router.PathPrefix("/api").Subrouter()

	// /spots/nearest must register before /spots/{id} so "nearest"
	// never parses as an id.
	api.HandleFunc("/spots/nearest", s.handlers.NearestSpots).Methods("GET")
	api.HandleFunc("/spots", s.handlers.ListSpots).Methods("GET")
	api.HandleFunc("/spots", s.handlers.CreateSpot).Methods("POST")
	api.HandleFunc("/spots/{id:[0-9]+}", s.handlers.GetSpot).Methods("GET")
	api.HandleFunc("/spots/{id:[0-9]+}", s.handlers.UpdateSpot).Methods("PUT")
	api.HandleFunc("/spots/{id:[0-9]+}", s.handlers.DeleteSpot).Methods("DELETE")
	api.HandleFunc("/spots/{id:[0-9]+}/forecast", s.handlers.GetForecast).Methods("GET")
	api.HandleFunc("/spots/{id:[0-9]+}/best", s.handlers.GetBest).Methods("GET")
	api.HandleFunc("/spots/{id:[0-9]+}/history", s.handlers.GetHistory).Methods("GET")
	api.HandleFunc("/rank", s.handlers.Rank).Methods("GET")
	api.HandleFunc("/geocode", s.handlers.Geocode).Methods("GET")

	s.router.HandleFunc("/healthz", s.handlers.Health).Methods("GET")
	s.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	s.router.NotFoundHandler = http.HandlerFunc(s.handlers.NotFound)
}

// Start begins listening. Returns http.ErrServerClosed after a graceful
// shutdown.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("api server starting")
	return s.server.ListenAndServe()
}

// Shutdown drains connections within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("api server shutting down")
	return s.server.Shutdown(ctx)
}

// ServeHTTP delegates to the router, for tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type ctxKey string

const requestIDKey ctxKey = "request_id"

// requestIDMiddleware tags every request with a short unique id.
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()[:8]
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loggingMiddleware emits one structured line per request.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		requestID, _ := r.Context().Value(requestIDKey).(string)
		s.logger.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapper.status).
			Dur("duration", time.Since(start)).
			Str("remote", r.RemoteAddr).
			Msg("request")
	})
}

// metricsMiddleware counts requests and durations per route template.
func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tmpl, err := current.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}

		s.metrics.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(wrapper.status)).Inc()
		s.metrics.HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// statusWriter captures the response status for logging and metrics.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
