package dto

import (
	"time"

	"github.com/jhoicas/ecorecoleccion-api/pkg/authz"
	"github.com/jhoicas/ecorecoleccion-api/pkg/ui"
)

// RegisterRequest auto-registro público. Siempre crea un solicitante.
type RegisterRequest struct {
	UserName  string `json:"user_name" validate:"required,username"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,strongpassword"`
	FirstName string `json:"first_name" validate:"required,min=2,max=50"`
	LastName  string `json:"last_name" validate:"required,min=2,max=50"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token de sesión, su expiración y el perfil.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// SessionResponse lo que el cliente necesita para evaluar permisos localmente:
// rol, tabla de permisos del rol y menú de navegación ya filtrado.
type SessionResponse struct {
	User        UserResponse        `json:"user"`
	Role        authz.Role          `json:"role"`
	Permissions []authz.Permission  `json:"permissions"`
	Navigation  []ui.NavigationItem `json:"navigation"`
}
