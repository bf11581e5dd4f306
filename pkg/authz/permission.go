package authz

// Acciones del vocabulario de permisos.
const (
	ActionRead     = "read"
	ActionWrite    = "write"
	ActionCreate   = "create"
	ActionDelete   = "delete"
	ActionAdmin    = "admin"
	ActionManage   = "manage"
	ActionOverride = "override"
)

// Recursos protegidos.
const (
	ResourceUsers              = "users"
	ResourceCollections        = "collections"
	ResourceReports            = "reports"
	ResourceWasteTypes         = "waste-types"
	ResourceCriteria           = "criteria"
	ResourcePoints             = "points"
	ResourceDiscountCodes      = "discount-codes"
	ResourceCollectionRoutes   = "collection-routes"
	ResourceCollectionRequests = "collection-requests"
	ResourceDashboard          = "dashboard"
	ResourceSettings           = "settings"
	ResourceAnalytics          = "analytics"
	ResourceRoles              = "roles"
	ResourceSystem             = "system"
	ResourceAll                = "all"
	ResourcePermissions        = "permissions"
)

// Permission es un par (acción, recurso). La comparación es por igualdad exacta:
// no hay comodines ni jerarquía.
type Permission struct {
	Action   string `json:"action"`
	Resource string `json:"resource"`
}

// P atajo para construir un Permission.
func P(action, resource string) Permission {
	return Permission{Action: action, Resource: resource}
}

func (p Permission) String() string { return p.Action + ":" + p.Resource }

var requesterPermissions = []Permission{
	{ActionRead, ResourceReports},
	{ActionWrite, ResourceCollectionRequests},
	{ActionRead, ResourceCollectionRequests},
	{ActionRead, ResourceDiscountCodes},
	{ActionWrite, ResourceDiscountCodes},
	{ActionRead, ResourcePoints},
}

var collectorPermissions = []Permission{
	{ActionRead, ResourceCollectionRoutes},
	{ActionWrite, ResourceCollections},
	{ActionRead, ResourceCollections},
	// Solo para validar al usuario durante la recolección.
	{ActionRead, ResourceUsers},
	{ActionRead, ResourceWasteTypes},
	{ActionWrite, ResourcePoints},
}

// adminPermissions es informativa (pantallas, sesión). El evaluador nunca la
// consulta: el administrador pasa todas las verificaciones.
var adminPermissions = func() []Permission {
	crud := []string{ActionRead, ActionWrite, ActionDelete, ActionCreate}
	var out []Permission
	for _, res := range []string{
		ResourceUsers, ResourceCollections, ResourceReports, ResourceWasteTypes,
		ResourceCriteria, ResourcePoints, ResourceDiscountCodes,
		ResourceCollectionRoutes, ResourceCollectionRequests, ResourceRoles,
	} {
		for _, a := range crud {
			out = append(out, Permission{a, res})
		}
	}
	for _, res := range []string{ResourceDashboard, ResourceSettings, ResourceAnalytics} {
		out = append(out, Permission{ActionRead, res}, Permission{ActionWrite, res})
	}
	return append(out,
		Permission{ActionAdmin, ResourceSystem},
		Permission{ActionManage, ResourceAll},
		Permission{ActionOverride, ResourcePermissions},
	)
}()

// table devuelve la lista estática del rol (sin copiar). nil para roles desconocidos.
func table(r Role) []Permission {
	switch r {
	case RoleAdmin:
		return adminPermissions
	case RoleCollector:
		return collectorPermissions
	case RoleRequester:
		return requesterPermissions
	}
	return nil
}

// PermissionsFor devuelve una copia de la tabla del rol, para exponerla a los
// clientes (los guards de UI evalúan con la misma tabla).
func PermissionsFor(r Role) []Permission {
	src := table(r)
	if src == nil {
		return nil
	}
	out := make([]Permission, len(src))
	copy(out, src)
	return out
}
