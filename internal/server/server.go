package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xgustaf/todo-admin/internal/auth"
	"github.com/xgustaf/todo-admin/internal/flash"
	"github.com/xgustaf/todo-admin/internal/metrics"
	"github.com/xgustaf/todo-admin/internal/service"
	"github.com/xgustaf/todo-admin/internal/view"
)

// HealthChecker reports the state of a backing store.
type HealthChecker interface {
	Health() map[string]string
}

// FlashStore both queues and consumes flash messages.
type FlashStore interface {
	flash.Notifier
	flash.Bag
}

type Deps struct {
	Todos        service.TodoService
	DB           HealthChecker
	Auth         auth.Provider
	Flashes      FlashStore
	Views        *view.Renderer
	Metrics      *metrics.Metrics
	Log          *logrus.Entry
	CookieSecure bool
}

type Server struct {
	todoService  service.TodoService
	db           HealthChecker
	auth         auth.Provider
	flashes      FlashStore
	views        *view.Renderer
	metrics      *metrics.Metrics
	log          *logrus.Entry
	cookieSecure bool
}

func New(d Deps) *Server {
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}
	return &Server{
		todoService:  d.Todos,
		db:           d.DB,
		auth:         d.Auth,
		flashes:      d.Flashes,
		views:        d.Views,
		metrics:      d.Metrics,
		log:          d.Log.WithField("component", "http_handler"),
		cookieSecure: d.CookieSecure,
	}
}

// NewHTTPServer wires the router into an http.Server listening on port.
func NewHTTPServer(port int, s *Server) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
