package handler

import (
	"context"
	"net/http"

	"esep-backend/internal/domain"
	"esep-backend/internal/service"
	"github.com/go-chi/chi/v5"
)

type RegistrationLister interface {
	List(ctx context.Context) ([]domain.Registration, error)
}

type PanchayathLister interface {
	List(ctx context.Context) ([]domain.Panchayath, error)
}

type DashboardHandler struct {
	Registrations RegistrationLister
	Panchayaths   PanchayathLister
}

func (h DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard/stats", h.stats)
}

func (h DashboardHandler) stats(w http.ResponseWriter, r *http.Request) {
	registrations, err := h.Registrations.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}
	panchayaths, err := h.Panchayaths.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}

	stats := service.ComputeStats(registrations, panchayaths)
	byPanchayath := make([]map[string]any, 0, len(stats.ByPanchayath))
	for _, pc := range stats.ByPanchayath {
		byPanchayath = append(byPanchayath, map[string]any{
			"name":  pc.Name,
			"count": pc.Count,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total":         stats.Total,
		"by_category":   stats.ByCategory,
		"by_panchayath": byPanchayath,
	})
}
