package http

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"minjec-portal-backend/internal/logger"
	"minjec-portal-backend/internal/service"
)

// AuthHandler serves admin authentication.
type AuthHandler struct {
	auth service.AuthService
}

func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Email == "" || body.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	token, admin, err := h.auth.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		logger.Error("admin login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"admin": map[string]string{
			"id":    admin.ID,
			"email": admin.Email,
			"name":  admin.Name,
		},
	})
}

// RegisterAuthRoutes registers the admin login endpoint.
func RegisterAuthRoutes(router *mux.Router, auth service.AuthService) {
	handler := NewAuthHandler(auth)
	router.HandleFunc("/api/admin/login", handler.HandleLogin).Methods("POST")
}
