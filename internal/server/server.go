// Package server exposes the ranking pipeline over HTTP. It is a thin
// wrapper; all ranking semantics live in pkg/scout.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/reposcout/reposcout/pkg/history"
	"github.com/reposcout/reposcout/pkg/scout"
)

// Ranker is the pipeline boundary the server calls into.
type Ranker interface {
	RunRanking(ctx context.Context, requirement string) ([]scout.Candidate, error)
}

// Server handles the HTTP API.
type Server struct {
	ranker  Ranker
	history history.Store
	tasks   *taskStore
	logger  *log.Logger
}

// New creates a server. A nil history store disables run recording.
func New(ranker Ranker, hist history.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		ranker:  ranker,
		history: hist,
		tasks:   newTaskStore(),
		logger:  logger,
	}
}

// Handler builds the route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/api/rank", s.handleRank)
	r.Post("/api/tasks", s.handleCreateTask)
	r.Get("/api/tasks/{id}", s.handleGetTask)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type rankRequest struct {
	Requirement string `json:"requirement"`
}

type rankResponse struct {
	Requirement string            `json:"requirement"`
	Candidates  []scout.Candidate `json:"candidates"`
}

// handleRank runs a ranking synchronously and returns the result.
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRankRequest(w, r)
	if !ok {
		return
	}

	started := time.Now()
	candidates, err := s.ranker.RunRanking(r.Context(), req.Requirement)
	if err != nil {
		s.logger.Error("ranking failed", "requirement", req.Requirement, "error", err)
		writeError(w, http.StatusInternalServerError, "ranking failed")
		return
	}
	s.record(r.Context(), req.Requirement, candidates, started)

	writeJSON(w, http.StatusOK, rankResponse{Requirement: req.Requirement, Candidates: candidates})
}

// handleCreateTask starts a ranking in the background and returns its id.
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRankRequest(w, r)
	if !ok {
		return
	}

	id := uuid.NewString()
	s.tasks.create(id, req.Requirement)

	go func() {
		// Detached from the request context so the task survives the
		// initial HTTP exchange.
		ctx := context.Background()
		started := time.Now()
		candidates, err := s.ranker.RunRanking(ctx, req.Requirement)
		if err != nil {
			s.logger.Error("background ranking failed", "task", id, "error", err)
			s.tasks.fail(id, err.Error())
			return
		}
		s.record(ctx, req.Requirement, candidates, started)
		s.tasks.finish(id, candidates)
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"id": id})
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	task, ok := s.tasks.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) record(ctx context.Context, requirement string, candidates []scout.Candidate, started time.Time) {
	if s.history == nil {
		return
	}
	run := history.Run{
		ID:          uuid.NewString(),
		Requirement: requirement,
		Candidates:  candidates,
		StartedAt:   started,
		FinishedAt:  time.Now(),
	}
	if err := s.history.Save(ctx, run); err != nil {
		// Recording is best effort; the response already succeeded.
		s.logger.Warn("failed to record run", "error", err)
	}
}

func decodeRankRequest(w http.ResponseWriter, r *http.Request) (rankRequest, bool) {
	var req rankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return req, false
	}
	if req.Requirement == "" {
		writeError(w, http.StatusBadRequest, "requirement is required")
		return req, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
