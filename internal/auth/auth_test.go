package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xgustaf/todo-admin/internal/domain"
	"github.com/xgustaf/todo-admin/internal/repository"
)

type stubUsers map[uint]domain.User

func (s stubUsers) FindByID(_ context.Context, id uint) (*domain.User, error) {
	u, ok := s[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

const testSecret = "test-secret"

func newTestAuthenticator() *Authenticator {
	return NewAuthenticator(testSecret, "todo-admin", stubUsers{
		1: {ID: 1, Username: "admin"},
		2: {ID: 2, Username: "jane"},
	})
}

func requestWithBearer(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/admin/todo/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

func TestIssueAndAuthenticateBearer(t *testing.T) {
	a := newTestAuthenticator()
	token, err := a.Issue(1, []string{RoleAdmin}, time.Hour)
	require.NoError(t, err)

	p, err := a.Authenticate(requestWithBearer(token))
	require.NoError(t, err)
	assert.Equal(t, "admin", p.User.Username)
	assert.True(t, p.HasRole(RoleAdmin))
	assert.False(t, p.HasRole(RoleUser))
}

func TestAuthenticateCookie(t *testing.T) {
	a := newTestAuthenticator()
	token, err := a.Issue(2, []string{RoleUser}, time.Hour)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/admin/todo/", nil)
	r.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})

	p, err := a.Authenticate(r)
	require.NoError(t, err)
	assert.Equal(t, uint(2), p.User.ID)
}

func TestAuthenticateFailures(t *testing.T) {
	a := newTestAuthenticator()

	expired, err := a.Issue(1, []string{RoleAdmin}, -time.Minute)
	require.NoError(t, err)

	unknown, err := a.Issue(77, []string{RoleAdmin}, time.Hour)
	require.NoError(t, err)

	other := NewAuthenticator("another-secret", "todo-admin", stubUsers{})
	foreign, err := other.Issue(1, []string{RoleAdmin}, time.Hour)
	require.NoError(t, err)

	otherIssuer := NewAuthenticator(testSecret, "someone-else", stubUsers{})
	wrongIss, err := otherIssuer.Issue(1, []string{RoleAdmin}, time.Hour)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "1", "iss": "todo-admin"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := map[string]*http.Request{
		"no credentials": httptest.NewRequest(http.MethodGet, "/", nil),
		"expired":        requestWithBearer(expired),
		"unknown user":   requestWithBearer(unknown),
		"bad signature":  requestWithBearer(foreign),
		"wrong issuer":   requestWithBearer(wrongIss),
		"alg none":       requestWithBearer(unsigned),
		"garbage":        requestWithBearer("not.a.token"),
	}
	for name, r := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := a.Authenticate(r)
			assert.ErrorIs(t, err, ErrUnauthenticated)
		})
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Basic Zm9vOmJhcg==")
	_, err = a.Authenticate(r)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

type stubProvider struct {
	p   *Principal
	err error
}

func (s stubProvider) Authenticate(*http.Request) (*Principal, error) { return s.p, s.err }

func TestRequireRole(t *testing.T) {
	var reached bool
	var seen *Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		seen, _ = PrincipalFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	var deniedWith error
	denied := func(w http.ResponseWriter, r *http.Request, err error) {
		deniedWith = err
		w.WriteHeader(http.StatusForbidden)
	}

	admin := &Principal{User: domain.User{ID: 1}, Roles: []string{RoleUser, RoleAdmin}}
	cases := []struct {
		name     string
		provider stubProvider
		wantErr  error
		reached  bool
	}{
		{"admin passes", stubProvider{p: admin}, nil, true},
		{"non admin forbidden", stubProvider{p: &Principal{Roles: []string{RoleUser}}}, ErrForbidden, false},
		{"anonymous", stubProvider{err: ErrUnauthenticated}, ErrUnauthenticated, false},
		{"lookup failure", stubProvider{err: errors.New("db down")}, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reached, seen, deniedWith = false, nil, nil
			h := RequireRole(tc.provider, RoleAdmin, denied)(next)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/todo/", nil))

			assert.Equal(t, tc.reached, reached)
			if tc.reached {
				assert.Equal(t, http.StatusNoContent, rec.Code)
				assert.Same(t, admin, seen)
				return
			}
			assert.Equal(t, http.StatusForbidden, rec.Code)
			require.Error(t, deniedWith)
			if tc.wantErr != nil {
				assert.ErrorIs(t, deniedWith, tc.wantErr)
			}
		})
	}
}

func TestPrincipalFromEmptyContext(t *testing.T) {
	_, ok := PrincipalFrom(context.Background())
	assert.False(t, ok)
}
