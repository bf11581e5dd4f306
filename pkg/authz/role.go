// Package authz contiene el modelo de autorización por roles: el conjunto
// cerrado de roles, la tabla estática de permisos por rol y el evaluador que
// decide (rol, acción, recurso) → permitir/denegar.
//
// El paquete es puro (sin E/S, sin estado mutable) para que el gateway HTTP y
// los guards de presentación consulten exactamente la misma tabla.
package authz

import (
	"fmt"
	"strings"
)

// Role es uno de los tres roles del sistema. No es extensible en tiempo de ejecución.
type Role string

// Roles válidos. El valor es el que viaja en el claim "role" del token y el que
// se persiste en la columna users.role.
const (
	RoleAdmin     Role = "admin"
	RoleCollector Role = "recolector"
	RoleRequester Role = "usuario"
)

// Roles devuelve los tres roles en orden de Rol_ID (1 admin, 2 recolector, 3 usuario).
func Roles() []Role {
	return []Role{RoleAdmin, RoleCollector, RoleRequester}
}

// Valid informa si r pertenece al conjunto cerrado de roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCollector, RoleRequester:
		return true
	}
	return false
}

// ID devuelve el identificador numérico histórico del rol (0 si no es válido).
func (r Role) ID() int {
	switch r {
	case RoleAdmin:
		return 1
	case RoleCollector:
		return 2
	case RoleRequester:
		return 3
	}
	return 0
}

// DisplayName nombre legible para la UI.
func (r Role) DisplayName() string {
	switch r {
	case RoleAdmin:
		return "Administrador"
	case RoleCollector:
		return "Recolector"
	case RoleRequester:
		return "Usuario"
	}
	return ""
}

func (r Role) String() string { return string(r) }

// ParseRole acepta el nombre del rol (sin distinguir mayúsculas) o su ID numérico
// ("1", "2", "3"), que es lo que envían los clientes antiguos.
func ParseRole(s string) (Role, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "1":
		return RoleAdmin, nil
	case "2":
		return RoleCollector, nil
	case "3":
		return RoleRequester, nil
	}
	r := Role(v)
	if !r.Valid() {
		return "", fmt.Errorf("authz: rol desconocido %q", s)
	}
	return r, nil
}

// RoleFromID convierte el Rol_ID numérico en Role.
func RoleFromID(id int) (Role, error) {
	for _, r := range Roles() {
		if r.ID() == id {
			return r, nil
		}
	}
	return "", fmt.Errorf("authz: rol_id desconocido %d", id)
}
