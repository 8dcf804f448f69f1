package server

import (
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/foodbridge/dashboard/internal/dashboard"
	"github.com/foodbridge/dashboard/internal/util"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

// Viewer is the part of the dashboard the HTTP layer reads and drives.
type Viewer interface {
	View() dashboard.View
	SetPage(n int) error
}

type Server struct {
	viewer Viewer
	live   http.HandlerFunc
}

// New builds the server. live handles the websocket endpoint and may be nil.
func New(viewer Viewer, live http.HandlerFunc) *Server {
	return &Server{viewer: viewer, live: live}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

type pageRequest struct {
	Page int `json:"page"`
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/", s.DashboardHandler)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/view", s.ViewHandler)
		r.Post("/page", s.SetPageHandler)
	})
	if s.live != nil {
		r.Get("/ws", s.live)
	}
	return r
}

// DashboardHandler renders the HTML dashboard. A ?page=N parameter moves the
// shared page position before rendering.
func (s *Server) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("page"); raw != "" {
		page, ok := util.ParsePage(raw)
		if !ok {
			http.Error(w, "invalid page", http.StatusBadRequest)
			return
		}
		if err := s.viewer.SetPage(page); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, s.viewer.View()); err != nil {
		slog.Error("Failed to render dashboard", "error", err)
	}
}

func (s *Server) ViewHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.viewer.View())
}

func (s *Server) SetPageHandler(w http.ResponseWriter, r *http.Request) {
	var req pageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.viewer.SetPage(req.Page); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}
	slog.Debug("Page changed", "page", req.Page)
	respondJSON(w, http.StatusOK, s.viewer.View())
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to write response", "error", err)
	}
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, status, ErrorResponse{Error: message})
}
