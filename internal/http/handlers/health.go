package handlers

import (
	"net/http"

	"github.com/dropDatabas3/acmedash/internal/http/helpers"
)

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Health reporta el estado del proceso y sus dependencias.
// Degradado (store o cache caídos) responde 503 para que el LB lo saque.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}
	healthy := true

	if err := h.repo.Ping(r.Context()); err != nil {
		checks["store"] = err.Error()
		healthy = false
	} else {
		checks["store"] = "ok"
	}

	if h.cache != nil {
		if err := h.cache.Ping(r.Context()); err != nil {
			checks["cache"] = err.Error()
			healthy = false
		} else {
			checks["cache"] = "ok"
		}
	}

	resp := healthResponse{Status: "ok", Checks: checks}
	status := http.StatusOK
	if !healthy {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	helpers.WriteJSON(w, status, resp)
}
