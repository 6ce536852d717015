package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dropDatabas3/acmedash/internal/authz"
	"github.com/dropDatabas3/acmedash/internal/email"
	httperrors "github.com/dropDatabas3/acmedash/internal/http/errors"
	"github.com/dropDatabas3/acmedash/internal/http/helpers"
	"github.com/dropDatabas3/acmedash/internal/observability/logger"
	"github.com/dropDatabas3/acmedash/internal/store/core"
)

// Paginación fija del listado, igual que la tabla del dashboard.
const invoicesPerPage = 6

// =================================================================================
// DTOs
// =================================================================================

type invoiceRequest struct {
	CustomerID  string `json:"customer_id"`
	AmountCents int64  `json:"amount_cents"`
	Status      string `json:"status"`
	Date        string `json:"date,omitempty"` // YYYY-MM-DD; default hoy
}

type invoiceListResponse struct {
	Invoices   []core.InvoiceWithCustomer `json:"invoices"`
	Total      int64                      `json:"total"`
	Page       int                        `json:"page"`
	TotalPages int64                      `json:"total_pages"`
}

// validate normaliza y valida el request. Devuelve "" si está OK.
func (req *invoiceRequest) validate() string {
	req.CustomerID = strings.TrimSpace(req.CustomerID)
	req.Status = strings.TrimSpace(strings.ToLower(req.Status))

	switch {
	case req.CustomerID == "":
		return "customer_id es requerido"
	case req.AmountCents <= 0:
		return "amount_cents debe ser mayor a cero"
	case !core.ValidStatus(core.InvoiceStatus(req.Status)):
		return "status debe ser pending o paid"
	}
	if req.Date != "" {
		if _, err := time.Parse("2006-01-02", req.Date); err != nil {
			return "date debe tener formato YYYY-MM-DD"
		}
	}
	return ""
}

func (req *invoiceRequest) date() time.Time {
	if req.Date == "" {
		return time.Now().UTC().Truncate(24 * time.Hour)
	}
	d, _ := time.Parse("2006-01-02", req.Date)
	return d
}

// =================================================================================
// HANDLERS
// =================================================================================

// ListInvoices responde el listado paginado, con filtro opcional ?query=
// (matchea nombre/email del customer y status).
func (h *Handlers) ListInvoices(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			httperrors.WriteError(w, httperrors.ErrValidation.WithDetail("page debe ser un entero positivo"))
			return
		}
		page = n
	}

	total, err := h.repo.CountInvoices(r.Context(), query)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	invs, err := h.repo.ListInvoices(r.Context(), query, invoicesPerPage, (page-1)*invoicesPerPage)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if invs == nil {
		invs = []core.InvoiceWithCustomer{}
	}

	totalPages := (total + invoicesPerPage - 1) / invoicesPerPage
	helpers.WriteJSON(w, http.StatusOK, invoiceListResponse{
		Invoices:   invs,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	})
}

func (h *Handlers) GetInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.repo.GetInvoice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, inv)
}

// CreateInvoice da de alta una invoice. Requiere rol editor (lo garantiza el
// middleware de la ruta).
func (h *Handlers) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, authz.CanCreateInvoice) {
		return
	}
	var req invoiceRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		httperrors.WriteError(w, httperrors.ErrValidation.WithDetail(msg))
		return
	}

	inv := &core.Invoice{
		ID:          uuid.NewString(),
		CustomerID:  req.CustomerID,
		AmountCents: req.AmountCents,
		Status:      core.InvoiceStatus(req.Status),
		Date:        req.date(),
	}
	if err := h.repo.CreateInvoice(r.Context(), inv); err != nil {
		writeStoreError(w, err)
		return
	}
	h.invalidateSummary(r)

	logger.From(r.Context()).Info("invoice created",
		logger.InvoiceID(inv.ID),
		logger.CustomerID(inv.CustomerID),
	)
	helpers.WriteJSON(w, http.StatusCreated, inv)
}

func (h *Handlers) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, authz.CanUpdateInvoice) {
		return
	}
	var req invoiceRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		httperrors.WriteError(w, httperrors.ErrValidation.WithDetail(msg))
		return
	}

	inv := &core.Invoice{
		ID:          chi.URLParam(r, "id"),
		CustomerID:  req.CustomerID,
		AmountCents: req.AmountCents,
		Status:      core.InvoiceStatus(req.Status),
		Date:        req.date(),
	}
	if err := h.repo.UpdateInvoice(r.Context(), inv); err != nil {
		writeStoreError(w, err)
		return
	}
	h.invalidateSummary(r)

	helpers.WriteJSON(w, http.StatusOK, inv)
}

// DeleteInvoice borra una invoice. Requiere rol admin.
func (h *Handlers) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, authz.CanDeleteInvoice) {
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.repo.DeleteInvoice(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	h.invalidateSummary(r)

	logger.From(r.Context()).Info("invoice deleted", logger.InvoiceID(id))
	w.WriteHeader(http.StatusNoContent)
}

// RemindInvoice manda el recordatorio de pago por email al customer.
// Solo tiene sentido para invoices pendientes.
func (h *Handlers) RemindInvoice(w http.ResponseWriter, r *http.Request) {
	// mandar recordatorios es una acción de edición sobre la invoice
	if !allow(w, r, authz.CanUpdateInvoice) {
		return
	}
	inv, err := h.repo.GetInvoice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if inv.Status != core.InvoicePending {
		httperrors.WriteError(w, httperrors.ErrValidation.WithDetail("la invoice no está pendiente"))
		return
	}
	cust, err := h.repo.GetCustomer(r.Context(), inv.CustomerID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	text, html := email.ReminderBodies(cust.Name, inv)
	if err := h.sender.Send(cust.Email, email.ReminderSubject(inv), html, text); err != nil {
		logger.From(r.Context()).Error("reminder send failed",
			logger.InvoiceID(inv.ID),
			logger.Err(err),
		)
		httperrors.WriteError(w, httperrors.ErrInternal.WithCause(err))
		return
	}

	logger.From(r.Context()).Info("reminder sent",
		logger.InvoiceID(inv.ID),
		logger.CustomerID(cust.ID),
	)
	helpers.WriteJSON(w, http.StatusAccepted, map[string]string{
		"invoice_id": inv.ID,
		"sent_to":    cust.Email,
	})
}
