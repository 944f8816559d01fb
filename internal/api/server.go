// Package api is the thin HTTP collaborator over the pipeline. Routing
// and request plumbing live here; all compliance logic stays in the core.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"getgsa/internal/config"
	"getgsa/internal/models"
	"getgsa/internal/pipeline"
	"getgsa/internal/util"

	"go.uber.org/zap"
)

type Server struct {
	cfg  config.Config
	log  *zap.SugaredLogger
	pipe *pipeline.Pipeline

	// Submissions live only for the process lifetime so /analyze can
	// reference a prior /ingest; only redacted text is held here.
	mu     sync.Mutex
	subs   map[string]*pipeline.Submission
	lastID string
}

func NewServer(cfg config.Config, log *zap.SugaredLogger, pipe *pipeline.Pipeline) *Server {
	return &Server{
		cfg:  cfg,
		log:  log,
		pipe: pipe,
		subs: make(map[string]*pipeline.Submission),
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/ingest", s.handleIngest)
	mux.HandleFunc("/analyze", s.handleAnalyze)
	return withCORS(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.pipe.HealthCheck())
}

type ingestRequest struct {
	Documents []pipeline.DocumentInput `json:"documents"`
}

type ingestResponse struct {
	RequestID string            `json:"request_id"`
	Documents []models.Document `json:"documents"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}

	sub, err := s.pipe.Ingest(r.Context(), req.Documents)
	if err != nil {
		if errors.Is(err, util.ErrValidation) {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
		writeErr(w, http.StatusInternalServerError, err)
		return
	}

	s.mu.Lock()
	s.subs[sub.RequestID] = sub
	s.lastID = sub.RequestID
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, ingestResponse{RequestID: sub.RequestID, Documents: sub.Documents})
}

type analyzeRequest struct {
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	var req analyzeRequest
	if r.Body != nil {
		// An empty body means "analyze the most recent ingest".
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	s.mu.Lock()
	id := strings.TrimSpace(req.RequestID)
	if id == "" {
		id = s.lastID
	}
	sub := s.subs[id]
	s.mu.Unlock()

	if sub == nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("no documents found to analyze"))
		return
	}

	result, err := s.pipe.Analyze(r.Context(), sub)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
