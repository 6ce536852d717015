package middlewares

import (
	"context"

	"github.com/dropDatabas3/acmedash/internal/authz"
)

// =================================================================================
// CONTEXT KEYS
// =================================================================================

// Claves tipadas para evitar colisiones en el contexto.
type ctxKeyRequestID struct{}
type ctxKeyRole struct{}

// setRequestID inyecta el request ID en el contexto (interno)
func setRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID{}, requestID)
}

// GetRequestID lee el request ID del contexto. Vacío si no hay.
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyRequestID{}).(string); ok {
		return v
	}
	return ""
}

// WithRole guarda el rol ya resuelto para que los handlers no lo re-resuelvan.
func WithRole(ctx context.Context, role authz.Role) context.Context {
	return context.WithValue(ctx, ctxKeyRole{}, role)
}

// GetRole lee el rol del contexto. Si el middleware de rol no corrió,
// devuelve el piso: viewer.
func GetRole(ctx context.Context) authz.Role {
	if v, ok := ctx.Value(ctxKeyRole{}).(authz.Role); ok {
		return v
	}
	return authz.RoleViewer
}
