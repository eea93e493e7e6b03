// Package middleware provides HTTP middleware for authentication.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/hiremeplz/hiremeplz/internal/types"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// authKey is the context key for the resolved auth context.
const authKey ContextKey = "auth"

// TokenValidator validates a bearer token. The interface keeps this package
// free of a dependency on the JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (AuthProvider, error)
}

// AuthProvider exposes the identity carried by validated token claims.
type AuthProvider interface {
	Auth() types.AuthContext
}

// Auth creates middleware that validates bearer tokens and adds the auth
// context to the request context.
func Auth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w)
				return
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				unauthorized(w)
				return
			}

			tokenString := strings.TrimSpace(parts[1])
			if tokenString == "" {
				unauthorized(w)
				return
			}

			claims, err := validator.ValidateToken(tokenString)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), authKey, claims.Auth())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":{"code":"unauthorized","message":"missing or invalid bearer token"}}`))
}

// GetAuth extracts the authenticated identity from the request context.
func GetAuth(r *http.Request) (types.AuthContext, error) {
	auth, ok := r.Context().Value(authKey).(types.AuthContext)
	if !ok {
		return types.AuthContext{}, fmt.Errorf("auth context not found in request context")
	}
	return auth, nil
}

// WithAuth returns a context carrying the given identity. Used by tests.
func WithAuth(ctx context.Context, auth types.AuthContext) context.Context {
	return context.WithValue(ctx, authKey, auth)
}
