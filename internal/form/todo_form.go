// Package form binds and validates the todo admin form.
package form

import (
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

const (
	FieldTitle = "todo[title]"
	FieldToken = "_token"

	TitleMaxLength = 255
)

// TodoDraft holds the user-editable fields of a todo. Author, slug and id
// are not bindable.
type TodoDraft struct {
	Title string
}

type FieldError struct {
	Field   string
	Message string
}

// Result is either Valid or Invalid.
type Result interface {
	isResult()
}

type Valid struct {
	Title string
}

type Invalid struct {
	Errors []FieldError
}

func (Valid) isResult()   {}
func (Invalid) isResult() {}

// Bind reads the draft from a POST body. GET requests are reported as not
// submitted and yield the zero draft.
func Bind(r *http.Request) (TodoDraft, bool, error) {
	if r.Method != http.MethodPost {
		return TodoDraft{}, false, nil
	}
	if err := r.ParseForm(); err != nil {
		return TodoDraft{}, false, fmt.Errorf("parse form: %w", err)
	}
	return TodoDraft{Title: strings.TrimSpace(r.PostForm.Get(FieldTitle))}, true, nil
}

func Validate(d TodoDraft) Result {
	var errs []FieldError
	switch {
	case d.Title == "":
		errs = append(errs, FieldError{Field: FieldTitle, Message: "todo.title.blank"})
	case !utf8.ValidString(d.Title) || strings.ContainsRune(d.Title, 0):
		errs = append(errs, FieldError{Field: FieldTitle, Message: "todo.title.invalid"})
	case utf8.RuneCountInString(d.Title) > TitleMaxLength:
		errs = append(errs, FieldError{Field: FieldTitle, Message: "todo.title.too_long"})
	}
	if len(errs) > 0 {
		return Invalid{Errors: errs}
	}
	return Valid{Title: d.Title}
}

// View is the template context for the todo form.
type View struct {
	Action    string
	Title     string
	CSRFToken string
	Errors    map[string][]string
	Submitted bool
}

func NewView(action string, d TodoDraft, csrfToken string) View {
	return View{Action: action, Title: d.Title, CSRFToken: csrfToken, Errors: map[string][]string{}}
}

// WithResult attaches validation errors of an invalid result.
func (v View) WithResult(res Result) View {
	v.Submitted = true
	if inv, ok := res.(Invalid); ok {
		for _, e := range inv.Errors {
			v.Errors[e.Field] = append(v.Errors[e.Field], e.Message)
		}
	}
	return v
}

// FieldErrors returns the messages for a single field.
func (v View) FieldErrors(field string) []string {
	return v.Errors[field]
}

func (v View) Valid() bool {
	return len(v.Errors) == 0
}
