// Package authz implementa el kernel de autorización RBAC del dashboard.
//
// Única fuente de verdad de la jerarquía de roles: los consumers (middlewares
// HTTP, handlers) componen estos predicados en vez de redeclarar la tabla de
// rangos. El kernel es puro — sin estado, sin I/O — salvo el Resolver, que
// hace exactamente una lectura por llamada contra el SessionProvider externo.
package authz

// Role representa un nivel de privilegio RBAC.
// Valores mayores dominan estrictamente a los menores.
type Role int

// Niveles de privilegio, ordenados de menor a mayor.
const (
	RoleViewer Role = 1 // solo lectura
	RoleEditor Role = 2 // crea y edita invoices/customers
	RoleAdmin  Role = 3 // control total, incluye borrado
)

// String devuelve el nombre canónico del rol.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleEditor:
		return "editor"
	default:
		return "viewer"
	}
}

// ParseRole convierte el string guardado en la sesión a un Role.
// Valores desconocidos o vacíos mapean a RoleViewer (mínimo privilegio).
func ParseRole(s string) Role {
	switch s {
	case "admin":
		return RoleAdmin
	case "editor":
		return RoleEditor
	default:
		return RoleViewer
	}
}

// AtLeast reporta si el rol alcanza el rango requerido.
func (r Role) AtLeast(required Role) bool {
	return r >= required
}

// Predicados por acción. Centralizan el mapeo acción → rol mínimo:
// si cambia el umbral de una acción, cambia exactamente una línea.

// CanCreateInvoice: crear invoices requiere editor o superior.
func CanCreateInvoice(r Role) bool { return r.AtLeast(RoleEditor) }

// CanUpdateInvoice: editar invoices requiere editor o superior.
func CanUpdateInvoice(r Role) bool { return r.AtLeast(RoleEditor) }

// CanDeleteInvoice: borrar invoices requiere admin.
func CanDeleteInvoice(r Role) bool { return r.AtLeast(RoleAdmin) }
