package authz

// Principal es la identidad autenticada que viaja en el token y en el contexto
// de la petición. Role es una foto del momento de emisión del token: si un
// administrador cambia el rol, el token viejo conserva el rol anterior hasta
// expirar o reemitirse.
type Principal struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

// IsAdmin informa si el principal es administrador. nil ⇒ false.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// Can evalúa con Default. Un principal nil nunca tiene permisos.
func (p *Principal) Can(action, resource string) bool {
	if p == nil {
		return false
	}
	return Default.Can(p.Role, action, resource)
}

// Owns informa si el principal es el dueño del recurso o es administrador.
func (p *Principal) Owns(ownerID string) bool {
	if p == nil {
		return false
	}
	return p.IsAdmin() || (ownerID != "" && p.UserID == ownerID)
}
