package authz

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Session es la vista mínima que el kernel necesita de la sesión autenticada.
// La sesión es propiedad del subsistema de auth: acá solo se lee, nunca se
// crea, muta ni persiste.
type Session struct {
	UserID string
	Email  string
	Role   string // puede venir vacío: se degrada a viewer
}

// SessionProvider resuelve la sesión del request en curso.
// Current devuelve (nil, nil) cuando no hay sesión activa; un error indica
// un fallo de infraestructura del provider (no "sesión ausente").
type SessionProvider interface {
	Current(ctx context.Context) (*Session, error)
}

// ErrAccessDenied es el sentinel para errors.Is sobre *AccessDeniedError.
var ErrAccessDenied = errors.New("access denied")

// AccessDeniedError es la única condición de fallo del kernel: rol insuficiente.
// Se propaga sin capturar hasta el handler, que corta la acción antes de
// cualquier escritura.
type AccessDeniedError struct {
	Role     Role // rol resuelto del caller
	Required Role // rol mínimo exigido
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("access denied: role %q does not reach %q", e.Role, e.Required)
}

// Is habilita errors.Is(err, ErrAccessDenied).
func (e *AccessDeniedError) Is(target error) bool { return target == ErrAccessDenied }

// StatusCode devuelve el status HTTP equivalente (403 Forbidden).
func (e *AccessDeniedError) StatusCode() int { return http.StatusForbidden }

// Resolver conecta el SessionProvider con los predicados puros.
type Resolver struct {
	provider SessionProvider
}

// NewResolver crea un Resolver sobre el provider dado.
func NewResolver(p SessionProvider) *Resolver {
	return &Resolver{provider: p}
}

// CurrentRole resuelve el rol del caller con exactamente UNA lectura al
// provider. Sin sesión, o sesión sin rol explícito => RoleViewer: un caller
// anónimo o sin rol es mínimamente privilegiado, nunca privilegiado por
// defecto y nunca rechazado en esta capa. Un fallo del provider SÍ se
// propaga: un error de transporte no se degrada a un rol.
func (rs *Resolver) CurrentRole(ctx context.Context) (Role, error) {
	sess, err := rs.provider.Current(ctx)
	if err != nil {
		return RoleViewer, fmt.Errorf("authz: resolve session: %w", err)
	}
	if sess == nil || sess.Role == "" {
		return RoleViewer, nil
	}
	return ParseRole(sess.Role), nil
}

// RequireRole resuelve el rol y exige que alcance required. Devuelve el rol
// resuelto para que el caller lo retenga: el rol no debe re-resolverse (y
// poder cambiar) a mitad de una operación.
func (rs *Resolver) RequireRole(ctx context.Context, required Role) (Role, error) {
	role, err := rs.CurrentRole(ctx)
	if err != nil {
		return role, err
	}
	if !role.AtLeast(required) {
		return role, &AccessDeniedError{Role: role, Required: required}
	}
	return role, nil
}
