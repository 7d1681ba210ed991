package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go-user-service/internal/model"
)

type tokenVerifier interface {
	Verify(tokenString string) (model.UserIdentity, error)
}

type contextKey string

const identityContextKey contextKey = "user_identity"

type AuthMiddleware struct {
	verifier tokenVerifier
}

func NewAuthMiddleware(verifier tokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth gates a route behind a bearer token. A missing or malformed
// Authorization header is treated the same as no token at all.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeAuthMessage(w, http.StatusUnauthorized, "Token not provided")
			return
		}

		identity, err := m.verifier.Verify(token)
		if err != nil {
			writeAuthMessage(w, http.StatusForbidden, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return "", false
	}

	token := strings.TrimSpace(header[7:])
	if token == "" {
		return "", false
	}
	return token, true
}

func IdentityFromContext(ctx context.Context) (model.UserIdentity, bool) {
	identity, ok := ctx.Value(identityContextKey).(model.UserIdentity)
	return identity, ok
}

func writeAuthMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.AuthMessage{Message: message})
}
