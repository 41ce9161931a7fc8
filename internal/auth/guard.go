package auth

import (
	"context"
	"net/http"
)

type principalKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal stored by RequireRole.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}

// DeniedFunc writes the response for a rejected request. err is
// ErrUnauthenticated, ErrForbidden or a lookup failure.
type DeniedFunc func(w http.ResponseWriter, r *http.Request, err error)

// Provider resolves the principal of a request.
type Provider interface {
	Authenticate(r *http.Request) (*Principal, error)
}

// RequireRole rejects requests whose principal lacks role before the
// wrapped handler runs.
func RequireRole(p Provider, role string, denied DeniedFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := p.Authenticate(r)
			if err != nil {
				denied(w, r, err)
				return
			}
			if !principal.HasRole(role) {
				denied(w, r, ErrForbidden)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}
