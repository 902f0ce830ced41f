package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"esep-backend/internal/domain"
	"esep-backend/internal/events"
	"esep-backend/internal/repository"
	"github.com/go-chi/chi/v5"
)

type CategoryStore interface {
	List(ctx context.Context, activeOnly bool) ([]domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, c domain.Category) (*domain.Category, error)
	Update(ctx context.Context, id string, c domain.Category) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

type CategoryHandler struct {
	Store  CategoryStore
	Events events.Publisher
}

// RegisterPublicRoutes serves the browse-categories page: active programs
// only.
func (h CategoryHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/categories", h.listActive)
}

func (h CategoryHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/admin/categories", h.listAll)
	r.Post("/admin/categories", h.create)
	r.Put("/admin/categories/{id}", h.update)
	r.Patch("/admin/categories/{id}/active", h.setActive)
	r.Delete("/admin/categories/{id}", h.delete)
}

func (h CategoryHandler) listActive(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h CategoryHandler) listAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h CategoryHandler) list(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	items, err := h.Store.List(r.Context(), activeOnly)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, c := range items {
		resp = append(resp, categoryPayload(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

type categoryRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ActualFee   int64    `json:"actual_fee"`
	OfferFee    int64    `json:"offer_fee"`
	Image       string   `json:"image"`
	Features    []string `json:"features"`
	IsActive    *bool    `json:"is_active"`
}

func (h CategoryHandler) create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	if name == "" || description == "" {
		writeError(w, http.StatusBadRequest, "name and description are required")
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	c, err := h.Store.Create(r.Context(), domain.Category{
		ID:          domain.Slug(name),
		Name:        name,
		Description: description,
		ActualFee:   req.ActualFee,
		OfferFee:    req.OfferFee,
		Image:       req.Image,
		Features:    cleanFeatures(req.Features),
		IsActive:    active,
	})
	if err != nil {
		if repository.IsDuplicate(err) {
			writeError(w, http.StatusConflict, "category already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to add category")
		return
	}
	_ = h.Events.Publish(r.Context(), events.TableCategories)
	writeJSON(w, http.StatusCreated, categoryPayload(*c))
}

func (h CategoryHandler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	if name == "" || description == "" {
		writeError(w, http.StatusBadRequest, "name and description are required")
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	err := h.Store.Update(r.Context(), id, domain.Category{
		Name:        name,
		Description: description,
		ActualFee:   req.ActualFee,
		OfferFee:    req.OfferFee,
		Image:       req.Image,
		Features:    cleanFeatures(req.Features),
		IsActive:    active,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update category")
		return
	}
	_ = h.Events.Publish(r.Context(), events.TableCategories)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h CategoryHandler) setActive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.Store.SetActive(r.Context(), id, req.IsActive); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update category status")
		return
	}
	_ = h.Events.Publish(r.Context(), events.TableCategories)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h CategoryHandler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete category")
		return
	}
	_ = h.Events.Publish(r.Context(), events.TableCategories)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func cleanFeatures(features []string) []string {
	out := make([]string, 0, len(features))
	for _, f := range features {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func categoryPayload(c domain.Category) map[string]any {
	return map[string]any{
		"id":          c.ID,
		"name":        c.Name,
		"description": c.Description,
		"actual_fee":  c.ActualFee,
		"offer_fee":   c.OfferFee,
		"image":       c.Image,
		"features":    c.Features,
		"is_active":   c.IsActive,
	}
}
