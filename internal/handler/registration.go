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

type RegistrationStore interface {
	List(ctx context.Context) ([]domain.Registration, error)
	GetByID(ctx context.Context, id int64) (*domain.Registration, error)
	ExistsByMobile(ctx context.Context, mobile string) (bool, error)
	Create(ctx context.Context, p repository.CreateRegistrationParams) (*domain.Registration, error)
	UpdateStatus(ctx context.Context, id int64, status domain.RegistrationStatus) error
	Delete(ctx context.Context, id int64) error
	FindByMobile(ctx context.Context, mobile string) (*domain.Registration, error)
	FindByCustomerID(ctx context.Context, customerID string) (*domain.Registration, error)
}

// CategoryGetter resolves the program a registrant enrolls into; its name
// and offer fee are denormalized onto the registration row.
type CategoryGetter interface {
	Get(ctx context.Context, id string) (*domain.Category, error)
}

type RegistrationHandler struct {
	Store      RegistrationStore
	Categories CategoryGetter
	Events     events.Publisher
}

func (h RegistrationHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/registrations", h.create)
	r.Get("/registrations/status", h.checkStatus)
}

// RegisterReadRoutes is mounted for every admin role, including read-only
// ones.
func (h RegistrationHandler) RegisterReadRoutes(r chi.Router) {
	r.Get("/registrations", h.list)
	r.Get("/registrations/export", h.export)
}

func (h RegistrationHandler) RegisterMutateRoutes(r chi.Router) {
	r.Patch("/registrations/{id}/status", h.updateStatus)
	r.Delete("/registrations/{id}", h.delete)
}

func (h RegistrationHandler) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string `json:"name"`
		Address      string `json:"address"`
		Mobile       string `json:"mobile"`
		Panchayath   string `json:"panchayath"`
		Ward         string `json:"ward"`
		Category     string `json:"category"`
		AgentDetails string `json:"agent_details"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	name := strings.TrimSpace(req.Name)
	address := strings.TrimSpace(req.Address)
	mobile := strings.TrimSpace(req.Mobile)
	panchayath := strings.TrimSpace(req.Panchayath)
	ward := strings.TrimSpace(req.Ward)
	if name == "" || address == "" || mobile == "" || panchayath == "" || ward == "" || req.Category == "" {
		writeError(w, http.StatusBadRequest, "please fill all required fields")
		return
	}
	if !isValidMobile(mobile) {
		writeError(w, http.StatusBadRequest, "mobile must be a 10-digit number")
		return
	}

	category, err := h.Categories.Get(r.Context(), req.Category)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "unknown category")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to submit registration")
		return
	}

	exists, err := h.Store.ExistsByMobile(r.Context(), mobile)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to submit registration")
		return
	}
	if exists {
		writeError(w, http.StatusConflict, "a registration with this mobile number already exists")
		return
	}

	var agent *string
	if a := strings.TrimSpace(req.AgentDetails); a != "" {
		agent = &a
	}
	reg, err := h.Store.Create(r.Context(), repository.CreateRegistrationParams{
		CustomerID:   domain.CustomerID(mobile, name),
		Name:         name,
		Address:      address,
		Mobile:       mobile,
		Panchayath:   panchayath,
		Ward:         ward,
		Category:     category.Name,
		AgentDetails: agent,
		FeeAmount:    category.OfferFee,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to submit registration")
		return
	}
	_ = h.Events.Publish(r.Context(), events.TableRegistrations)
	writeJSON(w, http.StatusCreated, registrationPayload(*reg))
}

func (h RegistrationHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load registrations")
		return
	}
	filtered := domain.FilterRegistrations(items, filterFromQuery(r))
	resp := make([]map[string]any, 0, len(filtered))
	for _, reg := range filtered {
		resp = append(resp, registrationPayload(reg))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h RegistrationHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
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
	next := domain.RegistrationStatus(req.Status)
	if next != domain.RegistrationApproved && next != domain.RegistrationRejected {
		writeError(w, http.StatusBadRequest, "status must be approved or rejected")
		return
	}

	reg, err := h.Store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "registration not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update status")
		return
	}
	if !domain.CanTransition(reg.Status, next) {
		writeError(w, http.StatusConflict, "registration is already "+string(reg.Status))
		return
	}

	if err := h.Store.UpdateStatus(r.Context(), id, next); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "registration not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update status")
		return
	}
	_ = h.Events.Publish(r.Context(), events.TableRegistrations)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h RegistrationHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "registration not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete registration")
		return
	}
	_ = h.Events.Publish(r.Context(), events.TableRegistrations)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// checkStatus is the public status lookup: exact match by mobile number or
// customer id, exactly-one semantics.
func (h RegistrationHandler) checkStatus(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "please enter a mobile number or customer ID")
		return
	}

	var (
		reg *domain.Registration
		err error
	)
	switch r.URL.Query().Get("by") {
	case "customer_id":
		reg, err = h.Store.FindByCustomerID(r.Context(), query)
	case "mobile", "":
		reg, err = h.Store.FindByMobile(r.Context(), query)
	default:
		writeError(w, http.StatusBadRequest, "by must be mobile or customer_id")
		return
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no registration found with the provided details")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to search registration")
		return
	}
	writeJSON(w, http.StatusOK, registrationPayload(*reg))
}

func filterFromQuery(r *http.Request) domain.RegistrationFilter {
	return domain.RegistrationFilter{
		Search:     r.URL.Query().Get("search"),
		Category:   r.URL.Query().Get("category"),
		Panchayath: r.URL.Query().Get("panchayath"),
	}
}

func isValidMobile(mobile string) bool {
	if len(mobile) != 10 {
		return false
	}
	for _, c := range mobile {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func registrationPayload(reg domain.Registration) map[string]any {
	return map[string]any{
		"id":            reg.ID,
		"customer_id":   reg.CustomerID,
		"name":          reg.Name,
		"address":       reg.Address,
		"mobile":        reg.Mobile,
		"panchayath":    reg.Panchayath,
		"ward":          reg.Ward,
		"category":      reg.Category,
		"agent_details": reg.AgentDetails,
		"status":        string(reg.Status),
		"fee_amount":    reg.FeeAmount,
		"created_at":    reg.CreatedAt,
	}
}
