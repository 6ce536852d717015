package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dropDatabas3/acmedash/internal/cache"
	"github.com/dropDatabas3/acmedash/internal/http/helpers"
	"github.com/dropDatabas3/acmedash/internal/observability/logger"
	"github.com/dropDatabas3/acmedash/internal/store/core"
)

const summaryCacheKey = "dash:summary"

// Cuántas invoices recientes muestra el dashboard.
const latestInvoicesN = 5

type dashboardSummary struct {
	Cards   *core.CardData             `json:"cards"`
	Revenue []core.Revenue             `json:"revenue"`
	Latest  []core.InvoiceWithCustomer `json:"latest_invoices"`
}

// DashboardSummary arma las cards, la serie de revenue y las últimas
// invoices en una sola respuesta. Se cachea con TTL corto porque es la
// pantalla más golpeada y tolera datos levemente viejos.
func (h *Handlers) DashboardSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.cache != nil {
		if raw, err := h.cache.Get(ctx, summaryCacheKey); err == nil {
			var cached dashboardSummary
			if json.Unmarshal(raw, &cached) == nil {
				w.Header().Set("X-Cache", "hit")
				helpers.WriteJSON(w, http.StatusOK, cached)
				return
			}
		} else if !errors.Is(err, cache.ErrNotFound) {
			// Cache caído no tumba el dashboard: seguimos contra el store.
			logger.From(ctx).Warn("summary cache read failed", logger.Err(err))
		}
	}

	cards, err := h.repo.CardData(ctx)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	revenue, err := h.repo.RevenueSeries(ctx)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	latest, err := h.repo.LatestInvoices(ctx, latestInvoicesN)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if revenue == nil {
		revenue = []core.Revenue{}
	}
	if latest == nil {
		latest = []core.InvoiceWithCustomer{}
	}

	summary := dashboardSummary{Cards: cards, Revenue: revenue, Latest: latest}

	if h.cache != nil {
		if raw, err := json.Marshal(summary); err == nil {
			if err := h.cache.Set(ctx, summaryCacheKey, raw, h.summaryTTL); err != nil {
				logger.From(ctx).Warn("summary cache write failed", logger.Err(err))
			}
		}
	}

	w.Header().Set("X-Cache", "miss")
	helpers.WriteJSON(w, http.StatusOK, summary)
}

// invalidateSummary tira la entrada cacheada después de una mutación.
func (h *Handlers) invalidateSummary(r *http.Request) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Delete(r.Context(), summaryCacheKey); err != nil && !errors.Is(err, cache.ErrNotFound) {
		logger.From(r.Context()).Warn("summary cache invalidate failed", logger.Err(err))
	}
}
