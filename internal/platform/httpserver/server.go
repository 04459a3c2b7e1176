package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	exampleservice "crudhub/contexts/catalog/example-service"
	productservice "crudhub/contexts/catalog/product-service"
	taskservice "crudhub/contexts/workspace/task-service"
	todoservice "crudhub/contexts/workspace/todo-service"
	"crudhub/internal/platform/metrics"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "crudhub/internal/platform/httpserver/docs"
)

const maxRequestBodyBytes = 1 << 20

// Modules are the bounded-context modules mounted on the server.
type Modules struct {
	Todos    todoservice.Module
	Tasks    taskservice.Module
	Products productservice.Module
	Examples exampleservice.Module
}

// ReadinessCheck reports whether a backing dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

type Server struct {
	mux      *http.ServeMux
	handler  http.Handler
	logger   *slog.Logger
	addr     string
	metrics  *metrics.HTTP
	ready    ReadinessCheck
	http     *http.Server
	todos    todoservice.Module
	tasks    taskservice.Module
	products productservice.Module
	examples exampleservice.Module
}

type Option func(*Server)

// WithReadinessCheck makes GET /readyz call check before answering.
func WithReadinessCheck(check ReadinessCheck) Option {
	return func(s *Server) {
		s.ready = check
	}
}

func WithMetrics(m *metrics.HTTP) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

func New(modules Modules, logger *slog.Logger, addr string, opts ...Option) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		todos:    modules.Todos,
		tasks:    modules.Tasks,
		products: modules.Products,
		examples: modules.Examples,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.NewHTTP("crudhub")
	}
	s.registerRoutes()
	s.handler = s.metrics.Middleware(s.mux)
	s.http = &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the instrumented root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start blocks until the server stops. A graceful Shutdown returns nil.
func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server stopping",
		"event", "http_server_stopping",
		"module", "internal/platform/httpserver",
		"layer", "platform",
	)
	return s.http.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.Handle("GET /metrics", s.metrics.Handler())
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("GET /readyz", s.handleReady)

	s.registerTodoRoutes()
	s.registerTaskRoutes()
	s.registerProductRoutes()
	s.registerExampleRoutes()
}

type healthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		if err := s.ready(r.Context()); err != nil {
			s.logger.Warn("readiness check failed",
				"event", "http_readiness_failed",
				"module", "internal/platform/httpserver",
				"layer", "platform",
				"error", err.Error(),
			)
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

type errorWriter func(w http.ResponseWriter, status int, code string, message string)

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any, writeError errorWriter) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.logger.Debug("request body rejected",
			"event", "http_invalid_json",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"path", r.URL.Path,
			"error", err.Error(),
		)
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	return true
}

func (s *Server) logInternalError(r *http.Request, module string, err error) {
	s.logger.Error("request failed",
		"event", "http_request_failed",
		"module", module,
		"layer", "platform",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err.Error(),
	)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// queryInt reads an integer query parameter. Missing or non-integer values
// yield zero so the use case applies its default.
func queryInt(r *http.Request, name string) int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
