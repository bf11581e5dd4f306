package dto

import (
	"time"

	"github.com/jhoicas/ecorecoleccion-api/pkg/authz"
)

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string     `json:"id"`
	UserName  string     `json:"user_name"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Role      authz.Role `json:"role"`
	RoleID    int        `json:"role_id"`
	RoleName  string     `json:"role_name"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// UserBasicResponse datos públicos mínimos (lookup de recolectores y solicitantes).
type UserBasicResponse struct {
	ID        string `json:"id"`
	UserName  string `json:"user_name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// CreateUserRequest alta administrativa; el rol es obligatorio.
type CreateUserRequest struct {
	UserName  string `json:"user_name" validate:"required,username"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,strongpassword"`
	FirstName string `json:"first_name" validate:"required,min=2,max=50"`
	LastName  string `json:"last_name" validate:"required,min=2,max=50"`
	Role      string `json:"role" validate:"required"`
}

// UpdateUserRequest edición administrativa; campos vacíos no se modifican.
type UpdateUserRequest struct {
	UserName  string `json:"user_name" validate:"omitempty,username"`
	Email     string `json:"email" validate:"omitempty,email,max=255"`
	Password  string `json:"password" validate:"omitempty,strongpassword"`
	FirstName string `json:"first_name" validate:"omitempty,min=2,max=50"`
	LastName  string `json:"last_name" validate:"omitempty,min=2,max=50"`
	Role      string `json:"role"`
}

// UpdateRoleRequest cambio de rol. Acepta nombre ("recolector") o id ("2").
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// ListUsersRequest filtros del listado administrativo.
type ListUsersRequest struct {
	PageRequest
	Search string `query:"search"`
	Role   string `query:"role"`
}

// UserListResponse página de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
