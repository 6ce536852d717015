package handlers

import (
	"net/http"
	"net/mail"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dropDatabas3/acmedash/internal/authz"
	httperrors "github.com/dropDatabas3/acmedash/internal/http/errors"
	"github.com/dropDatabas3/acmedash/internal/http/helpers"
	"github.com/dropDatabas3/acmedash/internal/observability/logger"
	"github.com/dropDatabas3/acmedash/internal/store/core"
)

type customerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url,omitempty"`
}

func (req *customerRequest) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if req.Name == "" {
		return "name es requerido"
	}
	if req.Email == "" {
		return "email es requerido"
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return "email inválido"
	}
	return ""
}

// ListCustomers responde los customers con sus agregados de invoices,
// con filtro opcional ?query= sobre nombre y email.
func (h *Handlers) ListCustomers(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	customers, err := h.repo.ListCustomers(r.Context(), query)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if customers == nil {
		customers = []core.CustomerSummary{}
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]any{"customers": customers})
}

func (h *Handlers) GetCustomer(w http.ResponseWriter, r *http.Request) {
	cust, err := h.repo.GetCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, cust)
}

// CreateCustomer da de alta un customer. Requiere rol editor.
func (h *Handlers) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, func(role authz.Role) bool { return role.AtLeast(authz.RoleEditor) }) {
		return
	}
	var req customerRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		httperrors.WriteError(w, httperrors.ErrValidation.WithDetail(msg))
		return
	}

	cust := &core.Customer{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Email:    req.Email,
		ImageURL: req.ImageURL,
	}
	if err := h.repo.CreateCustomer(r.Context(), cust); err != nil {
		writeStoreError(w, err)
		return
	}
	h.invalidateSummary(r)

	logger.From(r.Context()).Info("customer created", logger.CustomerID(cust.ID))
	helpers.WriteJSON(w, http.StatusCreated, cust)
}

func (h *Handlers) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, func(role authz.Role) bool { return role.AtLeast(authz.RoleEditor) }) {
		return
	}
	var req customerRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		httperrors.WriteError(w, httperrors.ErrValidation.WithDetail(msg))
		return
	}

	cust := &core.Customer{
		ID:       chi.URLParam(r, "id"),
		Name:     req.Name,
		Email:    req.Email,
		ImageURL: req.ImageURL,
	}
	if err := h.repo.UpdateCustomer(r.Context(), cust); err != nil {
		writeStoreError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, cust)
}

// DeleteCustomer borra un customer. Requiere rol admin.
// El store rechaza el borrado si el customer todavía tiene invoices.
func (h *Handlers) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, func(role authz.Role) bool { return role.AtLeast(authz.RoleAdmin) }) {
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.repo.DeleteCustomer(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	h.invalidateSummary(r)

	logger.From(r.Context()).Info("customer deleted", logger.CustomerID(id))
	w.WriteHeader(http.StatusNoContent)
}
