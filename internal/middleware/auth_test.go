package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-user-service/internal/model"
)

type stubVerifier struct {
	identity model.UserIdentity
	err      error
}

func (s *stubVerifier) Verify(string) (model.UserIdentity, error) {
	return s.identity, s.err
}

func gateBody(t *testing.T, rec *httptest.ResponseRecorder) model.AuthMessage {
	t.Helper()

	var body model.AuthMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRequireAuth_NoHeader(t *testing.T) {
	mw := NewAuthMiddleware(&stubVerifier{})
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token not provided", gateBody(t, rec).Message)
}

func TestRequireAuth_MalformedHeaderTreatedAsMissing(t *testing.T) {
	mw := NewAuthMiddleware(&stubVerifier{})
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	}))

	for _, header := range []string{"Token abc", "bearer", "Bearer ", "Basic dXNlcjpwYXNz"} {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.Equal(t, "Token not provided", gateBody(t, rec).Message, "header %q", header)
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	mw := NewAuthMiddleware(&stubVerifier{err: model.ErrTokenInvalid})
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with an invalid token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Invalid or expired token", gateBody(t, rec).Message)
}

func TestRequireAuth_AttachesIdentity(t *testing.T) {
	identity := model.UserIdentity{ID: 42, Fullname: "John Doe", Lastname: "Doe"}
	mw := NewAuthMiddleware(&stubVerifier{identity: identity})

	var seen model.UserIdentity
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		seen = got
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer some-valid-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, identity, seen)
}

func TestIdentityFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := IdentityFromContext(req.Context())
	assert.False(t, ok)
}
