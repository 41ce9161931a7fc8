package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/xgustaf/todo-admin/internal/auth"
	"github.com/xgustaf/todo-admin/internal/session"
	"github.com/xgustaf/todo-admin/internal/view"
)

const todoIndexPath = "/admin/todo/"

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)
	r.Use(s.metrics.Middleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.renderError(w, r, http.StatusNotFound, "error.not_found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.renderError(w, r, http.StatusMethodNotAllowed, "error.not_found")
	})

	r.Get("/", s.redirectToIndex)
	r.Get("/admin/todo", s.redirectToIndex)

	// Probes are read from monitoring dashboards on other origins.
	r.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"https://*", "http://*"},
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept"},
			MaxAge:         300,
		}))
		r.Get("/health", s.healthHandler)
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	})

	// Middlewares of a group wrap matched routes only, so an unknown path
	// such as /admin/todo/abc/edit is a 404 before any access check.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(s.auth, auth.RoleAdmin, s.accessDenied))
		r.Use(session.Middleware(s.cookieSecure))
		r.Use(s.csrf)

		r.Get("/admin/todo/", s.todoIndexHandler)
		r.Get("/admin/todo/new", s.todoNewHandler)
		r.Post("/admin/todo/new", s.todoNewHandler)
		r.Get("/admin/todo/{id:[0-9]+}/edit", s.todoEditHandler)
		r.Post("/admin/todo/{id:[0-9]+}/edit", s.todoEditHandler)
	})

	return r
}

func (s *Server) redirectToIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, todoIndexPath, http.StatusFound)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	healthStats := s.db.Health()
	if status, ok := healthStats["status"]; ok && status == "down" {
		respondWithJSON(w, http.StatusServiceUnavailable, healthStats)
		return
	}
	respondWithJSON(w, http.StatusOK, healthStats)
}

func (s *Server) accessDenied(w http.ResponseWriter, r *http.Request, err error) {
	entry := s.log.WithError(err).WithField("path", r.URL.Path)
	switch {
	case errors.Is(err, auth.ErrForbidden):
		entry.Warn("access denied")
		s.renderError(w, r, http.StatusForbidden, "error.forbidden")
	case errors.Is(err, auth.ErrUnauthenticated):
		entry.Info("authentication required")
		w.Header().Set("WWW-Authenticate", `Bearer realm="todo-admin"`)
		s.renderError(w, r, http.StatusUnauthorized, "error.unauthorized")
	default:
		entry.Error("failed to authenticate request")
		s.renderError(w, r, http.StatusInternalServerError, "error.internal")
	}
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, messageKey string) {
	page := view.ErrorPage{Status: status, Message: messageKey}
	if p, ok := auth.PrincipalFrom(r.Context()); ok {
		page.User = &p.User
	}
	if err := s.views.Render(w, status, view.PageError, page); err != nil {
		s.log.WithError(err).Error("failed to render error page")
		http.Error(w, http.StatusText(status), status)
	}
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error preparing response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
