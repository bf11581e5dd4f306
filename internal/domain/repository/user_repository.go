package repository

import (
	"context"

	"github.com/jhoicas/ecorecoleccion-api/internal/domain/entity"
	"github.com/jhoicas/ecorecoleccion-api/pkg/authz"
)

// UserFilter filtros del listado administrativo de usuarios.
type UserFilter struct {
	Search string     // coincide con user_name, nombre, apellidos o correo
	Role   authz.Role // vacío = todos
	Limit  int
	Offset int
}

// UserRepository define el puerto de persistencia para los principales (DIP).
// Los métodos Get* devuelven (nil, nil) si no existe el registro.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUserName(ctx context.Context, userName string) (*entity.User, error)
	// Update reescribe perfil, rol y credencial en una sola sentencia.
	Update(ctx context.Context, user *entity.User) error
	// UpdateRole cambia solo el rol. domain.ErrUserNotFound si no existe.
	UpdateRole(ctx context.Context, id string, role authz.Role) error
	// Delete domain.ErrUserNotFound si no existe.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f UserFilter) ([]*entity.User, int, error)
}
