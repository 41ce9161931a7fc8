package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/xgustaf/todo-admin/internal/auth"
	"github.com/xgustaf/todo-admin/internal/domain"
	"github.com/xgustaf/todo-admin/internal/flash"
	"github.com/xgustaf/todo-admin/internal/form"
	"github.com/xgustaf/todo-admin/internal/service"
	"github.com/xgustaf/todo-admin/internal/session"
	"github.com/xgustaf/todo-admin/internal/view"
)

func (s *Server) handlerLog(r *http.Request, handler string) *logrus.Entry {
	return s.log.WithFields(logrus.Fields{
		"handler":    handler,
		"request_id": middleware.GetReqID(r.Context()),
	})
}

// principal is always present behind RequireRole.
func principal(r *http.Request) *auth.Principal {
	p, _ := auth.PrincipalFrom(r.Context())
	return p
}

// layout consumes the pending flashes of the session.
func (s *Server) layout(r *http.Request, p *auth.Principal) view.Layout {
	l := view.Layout{User: &p.User}
	msgs, err := s.flashes.Consume(r.Context(), session.ID(r.Context()))
	if err != nil {
		s.log.WithError(err).Warn("failed to read flash messages")
	}
	l.Flashes = msgs
	return l
}

func (s *Server) addFlash(r *http.Request, kind, key string) {
	if err := s.flashes.AddFlash(r.Context(), session.ID(r.Context()), kind, key); err != nil {
		s.log.WithError(err).WithField("flash", key).Warn("failed to store flash message")
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	if err := s.views.Render(w, status, page, data); err != nil {
		s.serverError(w, r, "render", err)
	}
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, handler string, err error) {
	s.handlerLog(r, handler).WithError(err).Error("request failed")
	s.renderError(w, r, http.StatusInternalServerError, "error.internal")
}

func (s *Server) todoIndexHandler(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	todos, err := s.todoService.List(r.Context(), p.User)
	if err != nil {
		s.serverError(w, r, "TodoIndex", err)
		return
	}

	s.render(w, r, http.StatusOK, view.PageIndex, view.IndexPage{
		Layout: s.layout(r, p),
		Todos:  todos,
	})
}

func (s *Server) todoNewHandler(w http.ResponseWriter, r *http.Request) {
	p := principal(r)

	draft, submitted, err := form.Bind(r)
	if err != nil {
		s.handlerLog(r, "TodoNew").WithError(err).Warn("invalid form body")
		s.renderError(w, r, http.StatusBadRequest, "error.internal")
		return
	}

	fv := form.NewView("/admin/todo/new", draft, csrfToken(r.Context()))
	status := http.StatusOK
	if submitted {
		res := form.Validate(draft)
		if valid, ok := res.(form.Valid); ok {
			todo, err := s.todoService.Create(r.Context(), p.User, valid)
			if err != nil {
				s.serverError(w, r, "TodoNew", err)
				return
			}
			s.handlerLog(r, "TodoNew").WithField("todo_id", todo.ID).Info("todo created")
			s.addFlash(r, flash.KindSuccess, "todo.created_successfully")
			http.Redirect(w, r, todoIndexPath, http.StatusSeeOther)
			return
		}
		fv = fv.WithResult(res)
		status = http.StatusUnprocessableEntity
	}

	s.render(w, r, status, view.PageNew, view.FormPage{
		Layout: s.layout(r, p),
		Todo:   &domain.Todo{Title: draft.Title, AuthorID: p.User.ID, Author: p.User},
		Form:   fv,
	})
}

func (s *Server) todoEditHandler(w http.ResponseWriter, r *http.Request) {
	p := principal(r)

	// The route already restricts id to digits; overflow is still a 404.
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		s.renderError(w, r, http.StatusNotFound, "error.not_found")
		return
	}

	todo, err := s.todoService.Get(r.Context(), uint(id))
	if errors.Is(err, service.ErrTodoNotFound) {
		s.renderError(w, r, http.StatusNotFound, "error.not_found")
		return
	}
	if err != nil {
		s.serverError(w, r, "TodoEdit", err)
		return
	}

	draft, submitted, err := form.Bind(r)
	if err != nil {
		s.handlerLog(r, "TodoEdit").WithError(err).Warn("invalid form body")
		s.renderError(w, r, http.StatusBadRequest, "error.internal")
		return
	}
	if !submitted {
		draft = form.TodoDraft{Title: todo.Title}
	}

	fv := form.NewView(fmt.Sprintf("/admin/todo/%d/edit", todo.ID), draft, csrfToken(r.Context()))
	status := http.StatusOK
	if submitted {
		res := form.Validate(draft)
		if valid, ok := res.(form.Valid); ok {
			if err := s.todoService.Edit(r.Context(), todo, valid); err != nil {
				s.serverError(w, r, "TodoEdit", err)
				return
			}
			s.handlerLog(r, "TodoEdit").WithField("todo_id", todo.ID).Info("todo updated")
			s.addFlash(r, flash.KindSuccess, "todo.updated_successfully")
			http.Redirect(w, r, todoIndexPath, http.StatusSeeOther)
			return
		}
		fv = fv.WithResult(res)
		status = http.StatusUnprocessableEntity
	}

	s.render(w, r, status, view.PageEdit, view.FormPage{
		Layout: s.layout(r, p),
		Todo:   todo,
		Form:   fv,
	})
}
