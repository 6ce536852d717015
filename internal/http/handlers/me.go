package handlers

import (
	"net/http"

	"github.com/dropDatabas3/acmedash/internal/authz"
	httperrors "github.com/dropDatabas3/acmedash/internal/http/errors"
	"github.com/dropDatabas3/acmedash/internal/http/helpers"
	"github.com/dropDatabas3/acmedash/internal/session"
)

type meResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"`
}

// Me devuelve la identidad y el rol efectivo de la sesión actual.
// La ruta va detrás de RequireSession, así que acá siempre hay sesión;
// el chequeo extra es por si alguien monta el handler suelto.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if sess == nil {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	// Rol desconocido o vacío colapsa a viewer, igual que en el kernel.
	role := authz.ParseRole(sess.Role)

	helpers.WriteJSON(w, http.StatusOK, meResponse{
		UserID: sess.UserID,
		Email:  sess.Email,
		Role:   role.String(),
	})
}
