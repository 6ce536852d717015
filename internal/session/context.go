package session

import (
	"context"

	"github.com/dropDatabas3/acmedash/internal/authz"
)

type ctxKey struct{}

// ToContext inyecta la sesión resuelta en el contexto.
// Lo llama el middleware HTTP (adaptador único en el borde del sistema).
func ToContext(ctx context.Context, sess *authz.Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, sess)
}

// FromContext extrae la sesión del contexto. nil si no hay sesión.
func FromContext(ctx context.Context) *authz.Session {
	if v := ctx.Value(ctxKey{}); v != nil {
		if s, ok := v.(*authz.Session); ok {
			return s
		}
	}
	return nil
}

// ContextProvider implementa authz.SessionProvider leyendo la sesión que el
// middleware inyectó en el contexto. Así el kernel recibe la sesión como
// dato explícito del request y no depende de ningún estado global.
type ContextProvider struct{}

func (ContextProvider) Current(ctx context.Context) (*authz.Session, error) {
	return FromContext(ctx), nil
}
