package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/scena"
	"github.com/aretw0/scena/internal/dto"
	"github.com/aretw0/scena/pkg/adapters/memory"
	"github.com/aretw0/scena/pkg/domain"
	"github.com/aretw0/scena/pkg/group"
	"github.com/aretw0/scena/pkg/layer"
	"github.com/aretw0/scena/pkg/session"
	"github.com/go-chi/chi/v5"
)

// maxCSSBody bounds PUT /layers/{id}/css bodies.
const maxCSSBody = 64 << 10

// Workspace defines what the HTTP API needs from a scena workspace.
type Workspace interface {
	Select(ctx context.Context, current group.Targets[string], g domain.Gesture) (group.Targets[string], error)
	Drill(ctx context.Context, current group.Targets[string], target string) group.Targets[string]
	Tree() group.Targets[string]
	Children(scope domain.Scope) []layer.Entry[string]
	CSS(id string) (map[string]string, error)
	SetCSS(id, css string) error
	Commit(ctx context.Context) error
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// Server serves the JSON API of one workspace.
type Server struct {
	Workspace Workspace
	Streams   *StreamManager
	Sessions  *session.Manager
	Logger    *slog.Logger
	metrics   http.Handler
}

// Option configures the handler.
type Option func(*Server)

// WithMetricsHandler serves h on /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithSessions sets where session selections are kept. The default is an
// in-memory store.
func WithSessions(m *session.Manager) Option {
	return func(s *Server) {
		s.Sessions = m
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewHandler creates a new HTTP handler for the workspace.
func NewHandler(ws Workspace, opts ...Option) http.Handler {
	s := &Server{
		Workspace: ws,
		Streams:   NewStreamManager(),
		Logger:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams.logger = s.Logger
	if s.Sessions == nil {
		s.Sessions = session.NewManager(memory.NewSelectionStore(), session.WithLogger(s.Logger))
	}

	r := chi.NewRouter()
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/tree", s.GetTree)
	r.Get("/children", s.GetChildren)
	r.Post("/select", s.Select)
	r.Post("/drill", s.Drill)
	r.Route("/layers/{id}", func(r chi.Router) {
		r.Get("/css", s.GetCSS)
		r.Put("/css", s.PutCSS)
	})
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Get("/", s.GetSession)
		r.Delete("/", s.DeleteSession)
	})
	r.Get("/events", s.SubscribeEvents)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "scena-http",
		"version": strings.TrimSpace(scena.Version),
	})
}

// GetTree handles GET /tree.
func (s *Server) GetTree(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, dto.FromTargets(s.Workspace.Tree()))
}

// GetChildren handles GET /children?scope=g1/g2.
func (s *Server) GetChildren(w http.ResponseWriter, r *http.Request) {
	scope := domain.ParseScope(r.URL.Query().Get("scope"))
	s.writeJSON(w, http.StatusOK, dto.FromEntries(s.Workspace.Children(scope)))
}

// Select handles POST /select.
// With a session, an omitted "selected" resumes the session's stored
// selection and the result is stored back.
func (s *Server) Select(w http.ResponseWriter, r *http.Request) {
	var body dto.SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("Select: invalid request body", "error", err)
		return
	}

	var selErr error
	sel, err := s.apply(r.Context(), body.Session, body.Selected, func(current group.Targets[string]) group.Targets[string] {
		var next group.Targets[string]
		next, selErr = s.Workspace.Select(r.Context(), current, body.Gesture)
		return next
	})
	if err == nil && selErr != nil && !errors.Is(selErr, group.ErrMixedDepth) {
		err = selErr
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Select error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("Select failed", "error", err)
		return
	}
	resp := dto.NewSelectResponse(body.Gesture.Mode(), sel, selErr)
	s.broadcast(body.Session, "select", resp)
	s.writeJSON(w, http.StatusOK, resp)
}

// Drill handles POST /drill.
func (s *Server) Drill(w http.ResponseWriter, r *http.Request) {
	var body dto.DrillRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("Drill: invalid request body", "error", err)
		return
	}
	if body.Target == "" {
		http.Error(w, "target is required", http.StatusBadRequest)
		return
	}

	sel, err := s.apply(r.Context(), body.Session, body.Selected, func(current group.Targets[string]) group.Targets[string] {
		return s.Workspace.Drill(r.Context(), current, body.Target)
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("Drill error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("Drill failed", "error", err)
		return
	}
	resp := dto.NewSelectResponse(domain.ModeSub, sel, nil)
	s.broadcast(body.Session, "select", resp)
	s.writeJSON(w, http.StatusOK, resp)
}

// apply runs fn on the request's selection. Sessionless requests are
// stateless; session requests go through the session manager.
func (s *Server) apply(ctx context.Context, sessionID string, selected []dto.Target, fn func(group.Targets[string]) group.Targets[string]) (group.Targets[string], error) {
	if sessionID == "" {
		return fn(dto.ToTargets(selected)), nil
	}
	return s.Sessions.Update(ctx, sessionID, func(stored group.Targets[string]) group.Targets[string] {
		if selected != nil {
			return fn(dto.ToTargets(selected))
		}
		return fn(stored)
	})
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sel, err := s.Sessions.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, fmt.Sprintf("Session error: %v", err), http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, dto.FromTargets(sel))
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, fmt.Sprintf("Session error: %v", err), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetCSS handles GET /layers/{id}/css.
func (s *Server) GetCSS(w http.ResponseWriter, r *http.Request) {
	css, err := s.Workspace.CSS(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, css)
}

// PutCSS handles PUT /layers/{id}/css. The body is declaration text. The
// document is committed when the workspace has a store.
func (s *Server) PutCSS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	text, err := io.ReadAll(io.LimitReader(r.Body, maxCSSBody))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.Workspace.SetCSS(id, string(text)); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.Workspace.Commit(r.Context()); err != nil && !errors.Is(err, scena.ErrNoStore) {
		http.Error(w, fmt.Sprintf("Commit error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("Commit failed", "error", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrLayerNotFound), errors.Is(err, domain.ErrGroupNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

func (s *Server) broadcast(session, event string, v any) {
	if session == "" {
		return
	}
	bytes, err := json.Marshal(v)
	if err != nil {
		s.Logger.Error("broadcast encode failed", "error", err)
		return
	}
	s.Streams.Broadcast(session, Message{Event: event, Data: string(bytes)})
}
