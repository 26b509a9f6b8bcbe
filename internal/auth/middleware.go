package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Principal is the authenticated caller. Token issuance lives outside this
// service; the middleware only verifies bearer tokens signed with the
// shared secret.
type Principal struct {
	UserID    string
	IsAdmin   bool
	IsPremium bool
}

type Claims struct {
	IsAdmin   bool `json:"is_admin"`
	IsPremium bool `json:"is_premium"`
	jwt.RegisteredClaims
}

type contextKey struct{}

// FromContext returns the Principal stored by the middleware.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}

type Middleware struct {
	secret []byte
	logger *slog.Logger
}

func NewMiddleware(secret []byte, logger *slog.Logger) *Middleware {
	return &Middleware{secret: secret, logger: logger}
}

// Require rejects requests without a valid bearer token.
func (m *Middleware) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := m.authenticate(r)
		if err != nil {
			m.writeError(w, http.StatusUnauthorized, "invalid or missing token")
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, p)))
	}
}

// RequireAdmin rejects authenticated callers without the admin capability.
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return m.Require(func(w http.ResponseWriter, r *http.Request) {
		p, _ := FromContext(r.Context())
		if !p.IsAdmin {
			m.writeError(w, http.StatusForbidden, "admin privileges required")
			return
		}
		next(w, r)
	})
}

// RequirePremium admits premium members and admins.
func (m *Middleware) RequirePremium(next http.HandlerFunc) http.HandlerFunc {
	return m.Require(func(w http.ResponseWriter, r *http.Request) {
		p, _ := FromContext(r.Context())
		if !p.IsPremium && !p.IsAdmin {
			m.writeError(w, http.StatusForbidden, "premium membership required")
			return
		}
		next(w, r)
	})
}

func (m *Middleware) authenticate(r *http.Request) (Principal, error) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return Principal{}, errors.New("missing bearer token")
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Principal{}, err
	}
	if !parsed.Valid || claims.Subject == "" {
		return Principal{}, errors.New("invalid token claims")
	}

	return Principal{
		UserID:    claims.Subject,
		IsAdmin:   claims.IsAdmin,
		IsPremium: claims.IsPremium,
	}, nil
}

func (m *Middleware) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		m.logger.Error("failed to encode error response", "error", err)
	}
}

// SignToken mints an HS256 token for the given principal. Used by the
// notification worker's service identity and by tests.
func SignToken(secret []byte, p Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		IsAdmin:   p.IsAdmin,
		IsPremium: p.IsPremium,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
