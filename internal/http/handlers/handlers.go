// Package handlers implementa los endpoints del dashboard.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/dropDatabas3/acmedash/internal/authz"
	"github.com/dropDatabas3/acmedash/internal/cache"
	"github.com/dropDatabas3/acmedash/internal/email"
	httperrors "github.com/dropDatabas3/acmedash/internal/http/errors"
	"github.com/dropDatabas3/acmedash/internal/http/middlewares"
	"github.com/dropDatabas3/acmedash/internal/store/core"
)

// Handlers agrupa las dependencias compartidas por todos los endpoints.
type Handlers struct {
	repo       core.Repository
	cache      cache.Client
	sender     email.Sender
	summaryTTL time.Duration
}

// Deps son las dependencias para construir los Handlers.
// Sender nil se reemplaza por NopSender (envío desactivado).
type Deps struct {
	Repo       core.Repository
	Cache      cache.Client
	Sender     email.Sender
	SummaryTTL time.Duration
}

func New(d Deps) *Handlers {
	if d.Sender == nil {
		d.Sender = email.NopSender{}
	}
	if d.SummaryTTL <= 0 {
		d.SummaryTTL = 60 * time.Second
	}
	return &Handlers{
		repo:       d.Repo,
		cache:      d.Cache,
		sender:     d.Sender,
		summaryTTL: d.SummaryTTL,
	}
}

// allow re-chequea el predicado con el rol que el middleware dejó en el
// contexto. La ruta ya exigió el rol mínimo; esto ata cada mutación a su
// predicado aunque el handler se monte sin middleware. Sin rol en el
// contexto el default es viewer, así que falla cerrado.
func allow(w http.ResponseWriter, r *http.Request, pred func(authz.Role) bool) bool {
	if !pred(middlewares.GetRole(r.Context())) {
		httperrors.WriteError(w, httperrors.ErrForbidden)
		return false
	}
	return true
}

// writeStoreError traduce los errores del repositorio a errores de API.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		httperrors.WriteError(w, httperrors.ErrNotFound)
	case errors.Is(err, core.ErrConflict):
		httperrors.WriteError(w, httperrors.ErrConflict)
	case errors.Is(err, core.ErrInvalid):
		httperrors.WriteError(w, httperrors.ErrValidation.WithDetail(err.Error()))
	default:
		httperrors.WriteError(w, httperrors.ErrInternal.WithCause(err))
	}
}
