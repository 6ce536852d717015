// Package session implementa los providers concretos de sesión que consume el
// kernel de autorización (internal/authz).
//
// La creación de sesiones (login, emisión de tokens) es propiedad de un
// servicio de auth externo; acá sólo se RESUELVE: dado un request, extraer la
// sesión del transporte (Bearer JWT o cookie opaca) y exponerla al kernel.
package session

import (
	"context"
	"net/http"

	"github.com/dropDatabas3/acmedash/internal/authz"
)

// Source resuelve la sesión a partir del transporte HTTP.
// Devuelve (nil, nil) cuando el request no trae credenciales o son inválidas;
// un error indica un fallo de infraestructura (p.ej. backend de sesiones caído).
type Source interface {
	Resolve(ctx context.Context, r *http.Request) (*authz.Session, error)
}

// Multi combina sources: prueba en orden y devuelve la primera sesión
// resuelta. Un error de cualquier source corta la cadena (no se degrada un
// fallo de infraestructura a "anónimo").
type Multi []Source

func (m Multi) Resolve(ctx context.Context, r *http.Request) (*authz.Session, error) {
	for _, src := range m {
		sess, err := src.Resolve(ctx, r)
		if err != nil {
			return nil, err
		}
		if sess != nil {
			return sess, nil
		}
	}
	return nil, nil
}
