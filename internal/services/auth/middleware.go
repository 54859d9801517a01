// filepath: internal/services/auth/middleware.go
// Package auth protects the API with HTTP Basic authentication.
package auth

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"

	"voicejournal/internal/logging"

	"golang.org/x/crypto/bcrypt"
)

type contextKey string

const userKey contextKey = "user"

// AnonymousUser is the actor recorded when authentication is disabled.
const AnonymousUser = "anonymous"

// writeError sends a JSON error response.
func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// Middleware checks Basic credentials against a single configured account.
type Middleware struct {
	Username     string
	PasswordHash string // bcrypt
}

// NewMiddleware creates a new instance of Middleware. An empty hash disables authentication.
func NewMiddleware(username, passwordHash string) *Middleware {
	return &Middleware{Username: username, PasswordHash: passwordHash}
}

// Enabled reports whether requests must authenticate.
func (m *Middleware) Enabled() bool {
	return m.PasswordHash != ""
}

// AuthMiddleware rejects requests without valid Basic credentials.
func (m *Middleware) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.Enabled() {
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), AnonymousUser)))
			return
		}

		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="restricted"`)
			writeError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}
		if err := m.validateBasicAuth(username, password); err != nil {
			logging.Log.Warnf("AuthMiddleware: Invalid Basic Auth: %v", err)
			writeError(w, http.StatusUnauthorized, "Authentication failed")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), username)))
	})
}

// validateBasicAuth compares the credentials with the configured account.
func (m *Middleware) validateBasicAuth(username, password string) error {
	if subtle.ConstantTimeCompare([]byte(username), []byte(m.Username)) != 1 {
		return fmt.Errorf("user '%s' not found", username)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)); err != nil {
		return fmt.Errorf("password comparison failed for user '%s'", username)
	}
	return nil
}

// WithUser stores the authenticated username in ctx.
func WithUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, userKey, username)
}

// UserFromContext returns the authenticated username, or AnonymousUser.
func UserFromContext(ctx context.Context) string {
	if u, ok := ctx.Value(userKey).(string); ok && u != "" {
		return u
	}
	return AnonymousUser
}
