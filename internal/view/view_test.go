package view

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xgustaf/todo-admin/internal/domain"
	"github.com/xgustaf/todo-admin/internal/flash"
	"github.com/xgustaf/todo-admin/internal/form"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	return r
}

func TestRenderIndex(t *testing.T) {
	r := newTestRenderer(t)
	rec := httptest.NewRecorder()

	err := r.Render(rec, http.StatusOK, PageIndex, IndexPage{
		Layout: Layout{
			User:    &domain.User{Username: "admin"},
			Flashes: []flash.Message{{Kind: flash.KindSuccess, Key: "todo.created_successfully"}},
		},
		Todos: []domain.Todo{{ID: 3, Title: "<b>Buy</b> milk", Slug: "buy-milk"}},
	})
	require.NoError(t, err)

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, body, "Todo created successfully!")
	assert.Contains(t, body, `href="/admin/todo/3/edit"`)
	assert.Contains(t, body, "&lt;b&gt;Buy&lt;/b&gt; milk")
	assert.Contains(t, body, "admin")
}

func TestRenderEmptyIndex(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, newTestRenderer(t).Render(rec, http.StatusOK, PageIndex, IndexPage{}))
	assert.Contains(t, rec.Body.String(), "No todos found.")
}

func TestRenderFormWithErrors(t *testing.T) {
	r := newTestRenderer(t)
	rec := httptest.NewRecorder()

	fv := form.NewView("/admin/todo/new", form.TodoDraft{}, "csrf-123").
		WithResult(form.Validate(form.TodoDraft{}))
	err := r.Render(rec, http.StatusUnprocessableEntity, PageNew, FormPage{Form: fv})
	require.NoError(t, err)

	body := rec.Body.String()
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, body, `value="csrf-123"`)
	assert.Contains(t, body, "Title should not be blank.")
	assert.Contains(t, body, `action="/admin/todo/new"`)
	assert.Contains(t, body, "Create")
}

func TestRenderEdit(t *testing.T) {
	rec := httptest.NewRecorder()
	todo := &domain.Todo{ID: 9, Title: "Old"}
	fv := form.NewView("/admin/todo/9/edit", form.TodoDraft{Title: todo.Title}, "tok")

	require.NoError(t, newTestRenderer(t).Render(rec, http.StatusOK, PageEdit, FormPage{Todo: todo, Form: fv}))
	body := rec.Body.String()
	assert.Contains(t, body, "Edit todo #9")
	assert.Contains(t, body, `value="Old"`)
	assert.Contains(t, body, "Save changes")
}

func TestRenderError(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, newTestRenderer(t).Render(rec, http.StatusForbidden, PageError,
		ErrorPage{Status: http.StatusForbidden, Message: "error.forbidden"}))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "403 Forbidden")
}

func TestRenderUnknownPage(t *testing.T) {
	rec := httptest.NewRecorder()
	assert.Error(t, newTestRenderer(t).Render(rec, http.StatusOK, "nope", nil))
	assert.Equal(t, 0, rec.Body.Len())
}

func TestTranslateUnknownKey(t *testing.T) {
	assert.Equal(t, "some.key", Translate("some.key"))
}
