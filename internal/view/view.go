// Package view renders the admin HTML pages.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/xgustaf/todo-admin/internal/domain"
	"github.com/xgustaf/todo-admin/internal/flash"
	"github.com/xgustaf/todo-admin/internal/form"
)

const (
	PageIndex = "index"
	PageNew   = "new"
	PageEdit  = "edit"
	PageError = "error"
)

//go:embed templates/*.html
var templateFS embed.FS

type Layout struct {
	User    *domain.User
	Flashes []flash.Message
}

type IndexPage struct {
	Layout
	Todos []domain.Todo
}

type FormPage struct {
	Layout
	Todo *domain.Todo
	Form form.View
}

type ErrorPage struct {
	Layout
	Status  int
	Message string
}

// Renderer executes one template set per page, each sharing the layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"trans":      Translate,
		"statusText": http.StatusText,
	}
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{PageIndex, PageNew, PageEdit, PageError} {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/form.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// Render buffers the page so a template error never leaves a half-written
// response behind.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
