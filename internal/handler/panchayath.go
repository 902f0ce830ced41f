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
	"github.com/go-chi/chi/v5"
)

// PanchayathStore abstracts the panchayaths table so the refetch-on-change
// strategy can be swapped without touching the handler.
type PanchayathStore interface {
	List(ctx context.Context) ([]domain.Panchayath, error)
	Create(ctx context.Context, name, district string) (*domain.Panchayath, error)
	Update(ctx context.Context, id int64, name, district string) error
	Delete(ctx context.Context, id int64) error
}

type PanchayathHandler struct {
	Store  PanchayathStore
	Events events.Publisher
}

// RegisterPublicRoutes serves the registration form's panchayath dropdown.
func (h PanchayathHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/panchayaths", h.list)
}

func (h PanchayathHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/admin/panchayaths", h.list)
	r.Post("/admin/panchayaths", h.create)
	r.Put("/admin/panchayaths/{id}", h.update)
	r.Delete("/admin/panchayaths/{id}", h.delete)
}

func (h PanchayathHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load panchayaths")
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, p := range items {
		resp = append(resp, panchayathPayload(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h PanchayathHandler) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		District string `json:"district"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	name := strings.TrimSpace(req.Name)
	district := strings.TrimSpace(req.District)
	if name == "" || district == "" {
		writeError(w, http.StatusBadRequest, "name and district are required")
		return
	}
	p, err := h.Store.Create(r.Context(), name, district)
	if err != nil {
		if repository.IsDuplicate(err) {
			writeError(w, http.StatusConflict, "panchayath already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to add panchayath")
		return
	}
	_ = h.Events.Publish(r.Context(), events.TablePanchayaths)
	writeJSON(w, http.StatusCreated, panchayathPayload(*p))
}

func (h PanchayathHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		Name     string `json:"name"`
		District string `json:"district"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	name := strings.TrimSpace(req.Name)
	district := strings.TrimSpace(req.District)
	if name == "" || district == "" {
		writeError(w, http.StatusBadRequest, "name and district are required")
		return
	}
	if err := h.Store.Update(r.Context(), id, name, district); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "panchayath not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update panchayath")
		return
	}
	_ = h.Events.Publish(r.Context(), events.TablePanchayaths)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h PanchayathHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "panchayath not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete panchayath")
		return
	}
	_ = h.Events.Publish(r.Context(), events.TablePanchayaths)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func panchayathPayload(p domain.Panchayath) map[string]any {
	return map[string]any{
		"id":       p.ID,
		"name":     p.Name,
		"district": p.District,
	}
}
