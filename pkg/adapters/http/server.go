// Package http exposes the content workflow over HTTP.
//
// Routes:
//
//	POST /runs        run the workflow for {"input": "..."}
//	GET  /runs        list stored runs (requires a store)
//	GET  /runs/{id}   read the artifacts of a stored run (requires a store)
//	GET  /graph       transition table (?format=mermaid for a flowchart)
//	GET  /health      liveness
//	GET  /info        application version
//	GET  /metrics     Prometheus metrics
package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/folio"
	"github.com/aretw0/folio/internal/presentation/graph"
	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultMaxBodyBytes caps the size of a run request.
const DefaultMaxBodyBytes = 1 << 20

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	Engine       ports.ContentEngine
	Store        ports.ArtifactStore
	Gatherer     prometheus.Gatherer
	Logger       *slog.Logger
	MaxBodyBytes int64
}

// Option configures the Server.
type Option func(*Server)

// WithStore enables the /runs read endpoints.
func WithStore(store ports.ArtifactStore) Option {
	return func(s *Server) {
		s.Store = store
	}
}

// WithGatherer sets the source of /metrics (default: prometheus.DefaultGatherer).
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		if g != nil {
			s.Gatherer = g
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// WithMaxBodyBytes caps the size of a run request.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.MaxBodyBytes = n
		}
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine ports.ContentEngine, opts ...Option) http.Handler {
	s := &Server{
		Engine:       engine,
		Gatherer:     prometheus.DefaultGatherer,
		Logger:       slog.Default(),
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Post("/runs", s.CreateRun)
	r.Get("/runs", s.ListRuns)
	r.Get("/runs/{runID}", s.GetRun)
	r.Get("/graph", s.GetGraph)
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RunRequest is the body of POST /runs.
type RunRequest struct {
	Input string `json:"input"`
	// Degrade renders the best attempt instead of failing when retries are exhausted.
	Degrade bool `json:"degrade,omitempty"`
}

// Artifacts embeds the three documents as JSON values.
type Artifacts struct {
	ProductPage    json.RawMessage `json:"product_page"`
	FAQ            json.RawMessage `json:"faq"`
	ComparisonPage json.RawMessage `json:"comparison_page"`
}

// RunResponse is the body of a successful POST /runs.
type RunResponse struct {
	RunID     string    `json:"run_id"`
	Attempts  int       `json:"attempts"`
	History   []string  `json:"history"`
	Degraded  bool      `json:"degraded"`
	Artifacts Artifacts `json:"artifacts"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Kind     domain.ErrorKind `json:"kind,omitempty"`
	Step     string           `json:"step,omitempty"`
	Message  string           `json:"message"`
	Attempts int              `json:"attempts,omitempty"`
}

// CreateRun handles the POST /runs request.
func (s *Server) CreateRun(w http.ResponseWriter, r *http.Request) {
	var body RunRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.MaxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		s.Logger.Warn("CreateRun: Invalid request body", "error", err)
		writeError(w, status, ErrorBody{Message: "invalid request body"})
		return
	}
	if strings.TrimSpace(body.Input) == "" {
		writeError(w, http.StatusBadRequest, ErrorBody{Message: "input is required"})
		return
	}

	state, err := s.Engine.Run(r.Context(), body.Input)
	var runErr *domain.RunError
	if body.Degrade && errors.As(err, &runErr) && runErr.Kind == domain.KindExhaustedRetries && runErr.Best != nil {
		s.Logger.Info("CreateRun: Degrading exhausted run", "run_id", runErr.Best.RunID, "attempt", runErr.Attempts)
		state, err = s.Engine.Degrade(r.Context(), *runErr.Best)
	}
	if err != nil {
		s.Logger.Error("CreateRun failed", "run_id", state.RunID, "error", err)
		status, eb := describe(err)
		writeError(w, status, eb)
		return
	}

	writeJSON(w, http.StatusOK, RunResponse{
		RunID:     state.RunID,
		Attempts:  state.RetryCount,
		History:   state.History,
		Degraded:  state.Degraded,
		Artifacts: embed(state.Artifacts),
	})
}

// ListRuns handles the GET /runs request.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeError(w, http.StatusNotFound, ErrorBody{Message: "no artifact store configured"})
		return
	}
	runs, err := s.Store.List(r.Context())
	if err != nil {
		s.Logger.Error("ListRuns failed", "error", err)
		writeError(w, http.StatusInternalServerError, ErrorBody{Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"runs": runs})
}

// GetRun handles the GET /runs/{runID} request.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeError(w, http.StatusNotFound, ErrorBody{Message: "no artifact store configured"})
		return
	}
	runID := chi.URLParam(r, "runID")
	artifacts, err := s.Store.Read(r.Context(), runID)
	switch {
	case errors.Is(err, domain.ErrArtifactsNotFound):
		writeError(w, http.StatusNotFound, ErrorBody{Message: "run not found"})
		return
	case errors.Is(err, ports.ErrInvalidRunID):
		writeError(w, http.StatusBadRequest, ErrorBody{Message: err.Error()})
		return
	case err != nil:
		s.Logger.Error("GetRun failed", "run_id", runID, "error", err)
		writeError(w, http.StatusInternalServerError, ErrorBody{Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, embed(artifacts))
}

// GetGraph handles the GET /graph request.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	transitions := s.Engine.Inspect()
	if r.URL.Query().Get("format") == "mermaid" {
		entry := ""
		if len(transitions) > 0 {
			entry = transitions[0].From
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, graph.GenerateMermaid(entry, transitions, nil))
		return
	}
	writeJSON(w, http.StatusOK, transitions)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "folio-http",
		"version": strings.TrimSpace(folio.Version),
	})
}

// describe maps a run failure to a status code.
func describe(err error) (int, ErrorBody) {
	var runErr *domain.RunError
	if !errors.As(err, &runErr) {
		return http.StatusInternalServerError, ErrorBody{Message: err.Error()}
	}
	eb := ErrorBody{Kind: runErr.Kind, Step: runErr.Step, Message: runErr.Error(), Attempts: runErr.Attempts}
	switch runErr.Kind {
	case domain.KindContractViolation, domain.KindExhaustedRetries:
		return http.StatusUnprocessableEntity, eb
	case domain.KindCanceled:
		return http.StatusServiceUnavailable, eb
	case domain.KindStepFailed:
		return http.StatusBadGateway, eb
	default:
		return http.StatusInternalServerError, eb
	}
}

func embed(a domain.Artifacts) Artifacts {
	raw := func(doc string) json.RawMessage {
		if doc == "" {
			return json.RawMessage("null")
		}
		return json.RawMessage(doc)
	}
	return Artifacts{
		ProductPage:    raw(a.ProductPage),
		FAQ:            raw(a.FAQ),
		ComparisonPage: raw(a.ComparisonPage),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, eb ErrorBody) {
	writeJSON(w, status, map[string]ErrorBody{"error": eb})
}
