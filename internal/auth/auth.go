package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/xgustaf/todo-admin/internal/domain"
	"github.com/xgustaf/todo-admin/internal/repository"
)

const (
	RoleAdmin = "ROLE_ADMIN"
	RoleUser  = "ROLE_USER"

	TokenCookie = "todo_token"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access denied")
)

// Claims carries the user id in the subject and the granted roles.
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Principal is the authenticated user of a request.
type Principal struct {
	User  domain.User
	Roles []string
}

func (p *Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// UserFinder loads the user named by a token subject.
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}

// Authenticator verifies HS256 tokens and issues new ones.
type Authenticator struct {
	secret []byte
	issuer string
	users  UserFinder
	parser *jwt.Parser
	now    func() time.Time
}

func NewAuthenticator(secret, issuer string, users UserFinder) *Authenticator {
	return &Authenticator{
		secret: []byte(secret),
		issuer: issuer,
		users:  users,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
		now:    time.Now,
	}
}

// Issue mints a signed token for the user.
func (a *Authenticator) Issue(userID uint, roles []string, ttl time.Duration) (string, error) {
	now := a.now()
	claims := Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Authenticate resolves the principal of r. Every failure is reported as
// ErrUnauthenticated except lookup errors other than a missing user.
func (a *Authenticator) Authenticate(r *http.Request) (*Principal, error) {
	raw, err := tokenFromRequest(r)
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	_, err = a.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if !claims.VerifyIssuer(a.issuer, true) {
		return nil, fmt.Errorf("%w: unexpected issuer %q", ErrUnauthenticated, claims.Issuer)
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return nil, fmt.Errorf("%w: bad subject %q", ErrUnauthenticated, claims.Subject)
	}

	user, err := a.users.FindByID(r.Context(), uint(id))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: unknown user %d", ErrUnauthenticated, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load user %d: %w", id, err)
	}

	return &Principal{User: *user, Roles: claims.Roles}, nil
}

func tokenFromRequest(r *http.Request) (string, error) {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return "", fmt.Errorf("%w: bad authorization header", ErrUnauthenticated)
		}
		return strings.TrimSpace(token), nil
	}
	if c, err := r.Cookie(TokenCookie); err == nil && c.Value != "" {
		return c.Value, nil
	}
	return "", ErrUnauthenticated
}
