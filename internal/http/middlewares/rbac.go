package middlewares

import (
	"errors"
	"net/http"

	"github.com/dropDatabas3/acmedash/internal/authz"
	httperrors "github.com/dropDatabas3/acmedash/internal/http/errors"
	"github.com/dropDatabas3/acmedash/internal/metrics"
	"github.com/dropDatabas3/acmedash/internal/observability/logger"
)

// =================================================================================
// RBAC MIDDLEWARE
// =================================================================================

// RequireRole corta con 403 si el rol efectivo no alcanza el mínimo.
// El rol se resuelve acá, una vez por request, y queda en el contexto para
// los handlers (GetRole). Sin sesión o sin rol conocido, el kernel resuelve
// viewer: la denegación es idéntica a la de un viewer real.
func RequireRole(resolver *authz.Resolver, min authz.Role) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, err := resolver.RequireRole(r.Context(), min)
			if err != nil {
				var denied *authz.AccessDeniedError
				if errors.As(err, &denied) {
					metrics.AuthzDecisions.WithLabelValues(min.String(), "denied").Inc()
					logger.From(r.Context()).Info("access denied",
						logger.Role(denied.Role.String()),
						logger.Component("authz"),
					)
					httperrors.WriteError(w, httperrors.ErrForbidden)
					return
				}
				// Falla al leer la sesión: no es una denegación.
				metrics.AuthzDecisions.WithLabelValues(min.String(), "error").Inc()
				logger.From(r.Context()).Error("role resolve failed", logger.Err(err))
				httperrors.WriteError(w, httperrors.ErrSessionUnavailable.WithCause(err))
				return
			}

			metrics.AuthzDecisions.WithLabelValues(min.String(), "granted").Inc()
			ctx := WithRole(r.Context(), role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
