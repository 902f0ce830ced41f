package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"esep-backend/internal/domain"
	"esep-backend/internal/events"
	"esep-backend/internal/repository"
	"esep-backend/internal/service"
	"github.com/go-chi/chi/v5"
)

type AdminUserStore interface {
	List(ctx context.Context) ([]domain.AdminUser, error)
	GetByID(ctx context.Context, id int64) (*domain.AdminUser, error)
	Create(ctx context.Context, p repository.CreateAdminUserParams) (*domain.AdminUser, error)
	SetStatus(ctx context.Context, id int64, status domain.AdminStatus) error
}

// AdminUserHandler manages administrator accounts. The whole handler is
// mounted behind the Super Admin section gate.
type AdminUserHandler struct {
	Store  AdminUserStore
	Events events.Publisher
}

func (h AdminUserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/admin/users", h.list)
	r.Post("/admin/users", h.create)
	r.Patch("/admin/users/{id}/status", h.setStatus)
}

func (h AdminUserHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load admin users")
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, u := range items {
		resp = append(resp, adminUserPayload(u))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h AdminUserHandler) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username    string `json:"username"`
		Password    string `json:"password"`
		Role        string `json:"role"`
		Permissions string `json:"permissions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}
	role := domain.Role(req.Role)
	switch role {
	case domain.RoleSuperAdmin, domain.RoleLocalAdmin, domain.RoleUserAdmin:
	default:
		writeError(w, http.StatusBadRequest, "unknown role")
		return
	}
	hash, err := service.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create admin user")
		return
	}
	u, err := h.Store.Create(r.Context(), repository.CreateAdminUserParams{
		Username:    username,
		Password:    hash,
		Role:        role,
		Permissions: strings.TrimSpace(req.Permissions),
	})
	if err != nil {
		if repository.IsDuplicate(err) {
			writeError(w, http.StatusConflict, "username already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create admin user")
		return
	}
	_ = h.Events.Publish(r.Context(), events.TableAdminUsers)
	writeJSON(w, http.StatusCreated, adminUserPayload(*u))
}

func (h AdminUserHandler) setStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	status := domain.AdminStatus(req.Status)
	if status != domain.AdminActive && status != domain.AdminInactive {
		writeError(w, http.StatusBadRequest, "status must be active or inactive")
		return
	}

	target, err := h.Store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "admin user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update admin status")
		return
	}
	// Super Admin accounts cannot be toggled at all.
	if target.Role == domain.RoleSuperAdmin {
		writeError(w, http.StatusForbidden, "a Super Admin account cannot be deactivated")
		return
	}

	if err := h.Store.SetStatus(r.Context(), id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "admin user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update admin status")
		return
	}
	_ = h.Events.Publish(r.Context(), events.TableAdminUsers)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func adminUserPayload(u domain.AdminUser) map[string]any {
	return map[string]any{
		"id":          u.ID,
		"username":    u.Username,
		"role":        string(u.Role),
		"permissions": u.Permissions,
		"status":      string(u.Status),
		"created_at":  u.CreatedAt,
	}
}
