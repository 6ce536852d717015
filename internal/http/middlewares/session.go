package middlewares

import (
	"net/http"

	httperrors "github.com/dropDatabas3/acmedash/internal/http/errors"
	"github.com/dropDatabas3/acmedash/internal/observability/logger"
	"github.com/dropDatabas3/acmedash/internal/session"
)

// =================================================================================
// SESSION MIDDLEWARES
// =================================================================================

// WithSession resuelve la sesión del request (Bearer, cookie, lo que traiga el
// Source) y la inyecta en el contexto. NO exige sesión: anónimo sigue de largo
// y más adelante el kernel lo trata como viewer.
//
// Un error del Source es falla de infraestructura (cache caído, etc.), no un
// request anónimo: se responde 503 en vez de degradar silenciosamente el rol.
func WithSession(src session.Source) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := src.Resolve(r.Context(), r)
			if err != nil {
				logger.From(r.Context()).Error("session resolve failed", logger.Err(err))
				httperrors.WriteError(w, httperrors.ErrSessionUnavailable.WithCause(err))
				return
			}
			if sess == nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := session.ToContext(r.Context(), sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession corta con 401 si no hay sesión en el contexto.
// Solo para endpoints que necesitan identidad (p.ej. /v1/me); el resto de la
// API acepta anónimos.
func RequireSession() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if session.FromContext(r.Context()) == nil {
				httperrors.WriteError(w, httperrors.ErrUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
