package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"esep-backend/internal/server/authctx"
	"esep-backend/internal/service"
	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	Service *service.AuthService
}

func (h AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.login)
}

func (h AuthHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Get("/auth/me", h.me)
}

func (h AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	res, err := h.Service.Login(r.Context(), service.LoginInput{
		Username: strings.TrimSpace(req.Username),
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token":     res.Token,
		"expiresAt": res.ExpiresAt.UTC().Format(time.RFC3339),
		"user": map[string]any{
			"id":          res.User.ID,
			"username":    res.User.Username,
			"role":        string(res.User.Role),
			"permissions": res.User.Permissions,
			"status":      string(res.User.Status),
		},
	})
}

// me returns the session carried by the bearer token, so admin pages can
// restore their state on load.
func (h AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	s := authctx.FromContext(r.Context())
	if s == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":       s.UserID,
		"username": s.Username,
		"role":     string(s.Role),
	})
}
