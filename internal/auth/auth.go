// internal/auth/auth.go
package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const callerKey contextKey = "caller"

// MintToken issues a signed bearer token whose subject is the caller
// identity. The core services never authenticate identities themselves;
// they only compare the subject extracted here.
func MintToken(secret []byte, identity string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   identity,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken validates a bearer token and returns its subject.
func ParseToken(secret []byte, token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	return parsed.Claims.GetSubject()
}

// Middleware resolves the authenticated caller identity from the bearer
// token and stores it on the request context. Requests without a valid
// token are rejected before reaching any handler.
func Middleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := strings.TrimSpace(r.Header.Get("Authorization"))
			if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			subject, err := ParseToken(secret, strings.TrimSpace(header[7:]))
			if err != nil || subject == "" {
				http.Error(w, "invalid bearer token", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), callerKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerFromContext returns the identity stored by Middleware, or "" if the
// request was not authenticated.
func CallerFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(callerKey).(string); ok {
		return v
	}
	return ""
}
