package authz

// Evaluator decide si un rol puede ejecutar una acción sobre un recurso.
// Middlewares HTTP y guards de presentación reciben un Evaluator en lugar de
// reimplementar el bypass de administrador.
type Evaluator interface {
	Can(role Role, action, resource string) bool
	CanAny(role Role, perms ...Permission) bool
	CanAll(role Role, perms ...Permission) bool
	HasRole(role Role, allowed ...Role) bool
}

// StaticEvaluator evalúa contra la tabla compilada del paquete. Es el único
// lugar donde vive el bypass de administrador.
type StaticEvaluator struct{}

// Default es el evaluador que usa toda la aplicación.
var Default Evaluator = StaticEvaluator{}

// Can: admin ⇒ true sin consultar la tabla; resto ⇒ coincidencia exacta.
func (StaticEvaluator) Can(role Role, action, resource string) bool {
	if role == RoleAdmin {
		return true
	}
	for _, p := range table(role) {
		if p.Action == action && p.Resource == resource {
			return true
		}
	}
	return false
}

// CanAny devuelve true si alguno de los permisos pasa. Lista vacía ⇒ false
// (salvo admin).
func (e StaticEvaluator) CanAny(role Role, perms ...Permission) bool {
	if role == RoleAdmin {
		return true
	}
	for _, p := range perms {
		if e.Can(role, p.Action, p.Resource) {
			return true
		}
	}
	return false
}

// CanAll devuelve true solo si todos los permisos pasan. Lista vacía ⇒ true.
func (e StaticEvaluator) CanAll(role Role, perms ...Permission) bool {
	if role == RoleAdmin {
		return true
	}
	if !role.Valid() {
		return false
	}
	for _, p := range perms {
		if !e.Can(role, p.Action, p.Resource) {
			return false
		}
	}
	return true
}

// HasRole: admin siempre pasa; el resto debe estar en allowed.
func (StaticEvaluator) HasRole(role Role, allowed ...Role) bool {
	if role == RoleAdmin {
		return true
	}
	if !role.Valid() {
		return false
	}
	for _, a := range allowed {
		if a == role {
			return true
		}
	}
	return false
}

// Can, CanAny, CanAll y HasRole delegan en Default.
func Can(role Role, action, resource string) bool { return Default.Can(role, action, resource) }
func CanAny(role Role, perms ...Permission) bool  { return Default.CanAny(role, perms...) }
func CanAll(role Role, perms ...Permission) bool  { return Default.CanAll(role, perms...) }
func HasRole(role Role, allowed ...Role) bool     { return Default.HasRole(role, allowed...) }
