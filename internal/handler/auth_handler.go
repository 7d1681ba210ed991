package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"go-user-service/internal/middleware"
	"go-user-service/internal/model"
	"go-user-service/internal/service"
	"go-user-service/pkg/apierror"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "Invalid JSON body", http.StatusBadRequest))
		return
	}

	if strings.TrimSpace(payload.Username) == "" {
		writeError(w, apierror.New("BAD_REQUEST", "Username is required", http.StatusBadRequest))
		return
	}
	if payload.Password == "" {
		writeError(w, apierror.New("BAD_REQUEST", "Password is required", http.StatusBadRequest))
		return
	}

	token, err := h.service.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.LoginResponse{Message: "Login successful", Token: token})
}

// Logout runs behind RequireAuth, so a missing identity means the route was
// wired without the gate.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apierror.New("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized))
		return
	}

	h.service.Logout(identity.ID)
	writeJSON(w, http.StatusOK, model.LogoutResponse{Status: "ok", Message: "Logged out"})
}
