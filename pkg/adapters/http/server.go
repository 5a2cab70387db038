// Package http exposes the oracle over a small JSON API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/treeoracle/internal/presentation/graph"
	"github.com/aretw0/treeoracle/pkg/domain"
	"github.com/aretw0/treeoracle/pkg/ports"
	"github.com/aretw0/treeoracle/pkg/registry"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// MaxBatch caps the count accepted by POST /samples.
const MaxBatch = 10_000

// Oracle defines what the HTTP surface needs from the sample generator.
type Oracle interface {
	Registry() *registry.Registry
	BatchFrom(ctx context.Context, name string, seed int64, n int) ([]*domain.Sample, error)
}

// Server holds the handlers' dependencies.
type Server struct {
	Oracle  Oracle
	Store   ports.SampleStore
	Version string

	logger  *slog.Logger
	metrics http.Handler
}

// HandlerOption configures NewHandler.
type HandlerOption func(*Server)

// WithLogger sets the logger used for request failures.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics mounts h (typically promhttp) at /metrics.
func WithMetrics(h http.Handler) HandlerOption {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithVersion sets the version reported by /health.
func WithVersion(v string) HandlerOption {
	return func(s *Server) {
		s.Version = v
	}
}

// NewHandler creates a new HTTP handler for the oracle.
// Generated samples are written by the oracle; store serves the read routes
// and may be nil, in which case they answer 404.
func NewHandler(oracle Oracle, store ports.SampleStore, opts ...HandlerOption) http.Handler {
	s := &Server{
		Oracle: oracle,
		Store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.Health)
	r.Get("/grammars", s.ListGrammars)
	r.Get("/grammars/{name}", s.GetGrammar)
	r.Post("/samples", s.CreateSamples)
	r.Get("/samples", s.ListSamples)
	r.Get("/samples/{id}", s.GetSample)
	r.Delete("/samples/{id}", s.DeleteSample)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GrammarSummary is the list view of a registered grammar.
type GrammarSummary struct {
	Name    string   `json:"name"`
	Start   string   `json:"start"`
	Symbols []string `json:"symbols"`
}

// Rule is one weighted production.
type Rule struct {
	Symbol   string       `json:"symbol"`
	Weight   float64      `json:"weight"`
	Template *domain.Tree `json:"template"`
}

// GrammarDetail is the full view of a registered grammar.
type GrammarDetail struct {
	GrammarSummary
	Rules []Rule `json:"rules"`
}

// SampleRequest is the body of POST /samples.
type SampleRequest struct {
	Grammar string `json:"grammar"`
	Count   int    `json:"count"`
	Seed    int64  `json:"seed"`
}

// SampleResponse is the body returned by POST /samples.
type SampleResponse struct {
	Samples []*domain.Sample `json:"samples"`
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.Version})
}

// ListGrammars handles GET /grammars.
func (s *Server) ListGrammars(w http.ResponseWriter, r *http.Request) {
	reg := s.Oracle.Registry()
	out := []GrammarSummary{}
	for _, name := range reg.Names() {
		e, err := reg.Get(name)
		if err != nil {
			continue
		}
		out = append(out, summarize(name, e))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetGrammar handles GET /grammars/{name}. With ?format=mermaid it returns a flowchart.
func (s *Server) GetGrammar(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	e, err := s.Oracle.Registry().Get(name)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "mermaid" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, graph.GrammarMermaid(e.Grammar))
		return
	}

	detail := GrammarDetail{GrammarSummary: summarize(name, e), Rules: []Rule{}}
	for _, sym := range e.Grammar.Symbols() {
		options, weights, _ := e.Grammar.Lookup(sym)
		for i, opt := range options {
			detail.Rules = append(detail.Rules, Rule{Symbol: string(sym), Weight: weights[i], Template: opt})
		}
	}
	writeJSON(w, http.StatusOK, detail)
}

// CreateSamples handles POST /samples.
func (s *Server) CreateSamples(w http.ResponseWriter, r *http.Request) {
	var body SampleRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("CreateSamples: Invalid request body", "error", err)
		return
	}
	if body.Count == 0 {
		body.Count = 1
	}
	if body.Count < 0 || body.Count > MaxBatch {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": fmt.Sprintf("count must be between 1 and %d", MaxBatch),
		})
		return
	}

	samples, err := s.Oracle.BatchFrom(r.Context(), body.Grammar, body.Seed, body.Count)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, SampleResponse{Samples: samples})
}

// ListSamples handles GET /samples.
func (s *Server) ListSamples(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeJSON(w, http.StatusOK, map[string][]string{"ids": {}})
		return
	}
	ids, err := s.Store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"ids": ids})
}

// GetSample handles GET /samples/{id}.
func (s *Server) GetSample(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		s.writeError(w, domain.ErrSampleNotFound)
		return
	}
	sample, err := s.Store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sample)
}

// DeleteSample handles DELETE /samples/{id}.
func (s *Server) DeleteSample(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		s.writeError(w, domain.ErrSampleNotFound)
		return
	}
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func summarize(name string, e registry.Entry) GrammarSummary {
	symbols := make([]string, 0)
	for _, sym := range e.Grammar.Symbols() {
		symbols = append(symbols, string(sym))
	}
	return GrammarSummary{Name: name, Start: string(e.Start), Symbols: symbols}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSampleNotFound), errors.Is(err, domain.ErrGrammarLookup):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrGrammarConfig),
		errors.Is(err, domain.ErrGrammarNontermination),
		errors.Is(err, domain.ErrUnknownLabel),
		errors.Is(err, domain.ErrInvalidBasePair):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
