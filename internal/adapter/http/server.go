package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/orbitdeck/space-data-pipeline/internal/domain"
	"github.com/orbitdeck/space-data-pipeline/internal/pipeline"
)

// Pipeline is the façade surface the HTTP layer depends on.
type Pipeline interface {
	Objects(ctx context.Context, q pipeline.ObjectsQuery) (*pipeline.ObjectsEnvelope, error)
	Approaches(ctx context.Context, r domain.DateRange) (*pipeline.ApproachesEnvelope, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the pipeline plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	service    Pipeline
	logger     *slog.Logger
}

// NewServer creates the HTTP server with the API and operational routes.
func NewServer(addr string, service Pipeline, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		service: service,
		logger:  logger,
	}

	mux.HandleFunc("GET /api/v1/objects", s.handleObjects)
	mux.HandleFunc("GET /api/v1/approaches", s.handleApproaches)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleObjects(w http.ResponseWriter, r *http.Request) {
	q := pipeline.ObjectsQuery{
		Type:       r.URL.Query().Get("type"),
		OrbitClass: r.URL.Query().Get("orbit"),
		Country:    r.URL.Query().Get("country"),
		ActiveOnly: r.URL.Query().Get("active") == "true",
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_query", "limit must be a positive integer")
			return
		}
		q.Limit = n
	}

	env, err := s.service.Objects(r.Context(), q)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, env)
}

func (s *Server) handleApproaches(w http.ResponseWriter, r *http.Request) {
	var dr domain.DateRange
	var err error
	if dr.Start, err = parseDateParam(r, "start"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_query", "start must be a YYYY-MM-DD date")
		return
	}
	if dr.End, err = parseDateParam(r, "end"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_query", "end must be a YYYY-MM-DD date")
		return
	}

	env, err := s.service.Approaches(r.Context(), dr)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, env)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.service.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// writeServiceError maps façade errors onto HTTP statuses. Past validation
// the pipeline never fails (fallback policy), so anything other than an
// invalid query is a programming error surfaced as a 500.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrInvalidQuery) {
		writeError(w, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}
	s.logger.Error("unexpected pipeline error", "error", err)
	writeError(w, http.StatusInternalServerError, "internal", "internal error")
}

func parseDateParam(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", raw)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]string{"error": msg, "code": code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}
