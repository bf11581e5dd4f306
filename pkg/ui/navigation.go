package ui

import "github.com/jhoicas/ecorecoleccion-api/pkg/authz"

// NavigationItem entrada del menú lateral del dashboard.
type NavigationItem struct {
	Name string `json:"name"`
	Href string `json:"href"`

	requiredRoles      []authz.Role
	requiredPermission *authz.Permission
}

func item(name, href string, perm *authz.Permission, roles ...authz.Role) NavigationItem {
	return NavigationItem{Name: name, Href: href, requiredRoles: roles, requiredPermission: perm}
}

func perm(action, resource string) *authz.Permission {
	p := authz.P(action, resource)
	return &p
}

var menu = []NavigationItem{
	item("Dashboard", "/dashboard", nil),
	item("Reportes", "/dashboard/reportes",
		perm(authz.ActionRead, authz.ResourceReports), authz.RoleRequester, authz.RoleAdmin),
	item("Solicitar Recolección", "/dashboard/solicitar-recoleccion",
		perm(authz.ActionWrite, authz.ResourceCollectionRequests), authz.RoleRequester, authz.RoleAdmin),
	item("Códigos de Descuento", "/dashboard/codigos-descuento",
		perm(authz.ActionRead, authz.ResourceDiscountCodes), authz.RoleRequester, authz.RoleAdmin),
	item("Rutas de Recolección", "/dashboard/rutas",
		perm(authz.ActionRead, authz.ResourceCollectionRoutes), authz.RoleCollector, authz.RoleAdmin),
	item("Registrar Recolección", "/dashboard/registrar-recoleccion",
		perm(authz.ActionWrite, authz.ResourceCollections), authz.RoleCollector, authz.RoleAdmin),
	item("Gestión de Usuarios", "/dashboard/usuarios",
		perm(authz.ActionRead, authz.ResourceUsers), authz.RoleAdmin),
	item("Recolecciones", "/dashboard/recolecciones",
		perm(authz.ActionRead, authz.ResourceCollections), authz.RoleAdmin, authz.RoleCollector),
	item("Tipos de Residuos", "/dashboard/tipos-residuos",
		perm(authz.ActionRead, authz.ResourceWasteTypes), authz.RoleAdmin),
}

// Guard requisito de la entrada como Guard.
func (n NavigationItem) Guard() Guard {
	return Guard{Roles: n.requiredRoles, Permission: n.requiredPermission}
}

// Navigation menú visible para el viewer, en el orden del dashboard. Sin viewer ⇒ nil.
func Navigation(viewer *authz.Principal) []NavigationItem {
	if viewer == nil {
		return nil
	}
	out := make([]NavigationItem, 0, len(menu))
	for _, it := range menu {
		if it.Guard().Decide(viewer) == Allow {
			out = append(out, it)
		}
	}
	return out
}
