// Package ui contiene los guards de presentación del dashboard: deciden qué
// vistas y entradas de menú mostrar a partir del principal de la sesión.
//
// No son una frontera de seguridad. Solo evitan mostrar pantallas que la API
// va a rechazar; cada petición vuelve a autorizarse en el servidor con la
// misma tabla de pkg/authz.
package ui

import "github.com/jhoicas/ecorecoleccion-api/pkg/authz"

// Decision resultado de evaluar un Guard.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Guard requisito de una vista. Todos los campos definidos deben cumplirse;
// un Guard vacío solo exige sesión.
type Guard struct {
	Roles      []authz.Role      // el rol del viewer debe estar en la lista
	Permission *authz.Permission // permiso exacto
	AnyOf      []authz.Permission
	Evaluator  authz.Evaluator // nil = authz.Default
}

// RoleGuard exige uno de los roles indicados.
func RoleGuard(roles ...authz.Role) Guard { return Guard{Roles: roles} }

// PermissionGuard exige un permiso.
func PermissionGuard(action, resource string) Guard {
	p := authz.P(action, resource)
	return Guard{Permission: &p}
}

// AdminGuard solo administradores.
func AdminGuard() Guard { return RoleGuard(authz.RoleAdmin) }

func (g Guard) evaluator() authz.Evaluator {
	if g.Evaluator != nil {
		return g.Evaluator
	}
	return authz.Default
}

// Decide evalúa el guard sin efectos secundarios. Sin viewer ⇒ Deny;
// administrador ⇒ Allow.
func (g Guard) Decide(viewer *authz.Principal) Decision {
	if viewer == nil || !viewer.Role.Valid() {
		return Deny
	}
	ev := g.evaluator()
	if viewer.Role == authz.RoleAdmin {
		return Allow
	}
	if len(g.Roles) > 0 && !ev.HasRole(viewer.Role, g.Roles...) {
		return Deny
	}
	if g.Permission != nil && !ev.Can(viewer.Role, g.Permission.Action, g.Permission.Resource) {
		return Deny
	}
	if len(g.AnyOf) > 0 && !ev.CanAny(viewer.Role, g.AnyOf...) {
		return Deny
	}
	return Allow
}

// View salida de Render. Body la produce la función de contenido.
type View struct {
	Name    string `json:"name"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`
	Body    any    `json:"body,omitempty"`
}

// AccessDenied vista por defecto cuando el guard niega y no hay fallback.
var AccessDenied = View{
	Name:    "access-denied",
	Title:   "Acceso Denegado",
	Message: "No tienes permisos para acceder a esta sección.",
}

// Render invoca solo la rama elegida: content si el guard permite, fallback si
// niega (AccessDenied si fallback es nil). El contenido protegido nunca se
// construye para un viewer rechazado.
func Render(viewer *authz.Principal, g Guard, content, fallback func() View) View {
	if g.Decide(viewer) == Allow {
		return content()
	}
	if fallback == nil {
		return AccessDenied
	}
	return fallback()
}
