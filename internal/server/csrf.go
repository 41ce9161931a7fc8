package server

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/google/uuid"

	"github.com/xgustaf/todo-admin/internal/form"
)

const csrfCookie = "csrf_token"

type csrfKey struct{}

func csrfToken(ctx context.Context) string {
	tok, _ := ctx.Value(csrfKey{}).(string)
	return tok
}

// csrf implements the double-submit pattern: a POST must echo the value of
// the csrf_token cookie in its _token form field.
func (s *Server) csrf(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var token string
		if c, err := r.Cookie(csrfCookie); err == nil {
			token = c.Value
		}

		if r.Method == http.MethodPost {
			if err := r.ParseForm(); err != nil {
				s.renderError(w, r, http.StatusBadRequest, "error.internal")
				return
			}
			sent := r.PostForm.Get(form.FieldToken)
			if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(sent)) != 1 {
				s.log.WithField("path", r.URL.Path).Warn("csrf token mismatch")
				s.renderError(w, r, http.StatusForbidden, "error.forbidden")
				return
			}
		}

		if token == "" {
			token = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     csrfCookie,
				Value:    token,
				Path:     "/admin",
				HttpOnly: true,
				Secure:   s.cookieSecure,
				SameSite: http.SameSiteStrictMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), csrfKey{}, token)))
	})
}
