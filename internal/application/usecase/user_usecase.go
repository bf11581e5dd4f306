package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ecorecoleccion-api/internal/application/dto"
	"github.com/jhoicas/ecorecoleccion-api/internal/application/validation"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain/entity"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain/repository"
	"github.com/jhoicas/ecorecoleccion-api/pkg/authz"
)

// UserUseCase administración de principales: alta, edición, cambio de rol y baja.
type UserUseCase struct {
	repo       repository.UserRepository
	bcryptCost int
	now        func() time.Time
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo, bcryptCost: bcrypt.DefaultCost, now: time.Now}
}

// WithBcryptCost cambia el costo de bcrypt (tests).
func (uc *UserUseCase) WithBcryptCost(cost int) *UserUseCase {
	uc.bcryptCost = cost
	return uc
}

// List listado paginado con búsqueda y filtro por rol.
func (uc *UserUseCase) List(ctx context.Context, in dto.ListUsersRequest) (*dto.UserListResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	in.DefaultPage()
	f := repository.UserFilter{Search: strings.TrimSpace(in.Search), Limit: in.Limit, Offset: in.Offset}
	if in.Role != "" {
		role, err := authz.ParseRole(in.Role)
		if err != nil {
			return nil, domain.NewValidationError("rol inválido", map[string]string{"role": err.Error()})
		}
		f.Role = role
	}
	users, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, *entityToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// GetByID obtiene un usuario por ID. domain.ErrUserNotFound si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// GetBasic datos mínimos de un usuario (lo usan los recolectores para validar al solicitante).
func (uc *UserUseCase) GetBasic(ctx context.Context, id string) (*dto.UserBasicResponse, error) {
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.UserBasicResponse{
		ID: user.ID, UserName: user.UserName, FirstName: user.FirstName,
		LastName: user.LastName, Email: user.Email,
	}, nil
}

// Create alta administrativa con rol explícito.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	in.UserName = strings.TrimSpace(in.UserName)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	role, err := authz.ParseRole(in.Role)
	if err != nil {
		return nil, domain.NewValidationError("rol inválido", map[string]string{"role": err.Error()})
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("create user: hash password: %w", err)
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		UserName:     in.UserName,
		Email:        entity.NormalizeEmail(in.Email),
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// Update edición parcial: los campos vacíos conservan su valor. Un administrador no
// puede quitarse a sí mismo el rol de administrador.
func (uc *UserUseCase) Update(ctx context.Context, actor *authz.Principal, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(in.UserName); v != "" {
		user.UserName = v
	}
	if v := strings.TrimSpace(in.Email); v != "" {
		user.Email = entity.NormalizeEmail(v)
	}
	if v := strings.TrimSpace(in.FirstName); v != "" {
		user.FirstName = v
	}
	if v := strings.TrimSpace(in.LastName); v != "" {
		user.LastName = v
	}
	if in.Role != "" {
		role, err := authz.ParseRole(in.Role)
		if err != nil {
			return nil, domain.NewValidationError("rol inválido", map[string]string{"role": err.Error()})
		}
		if err := guardSelfDemotion(actor, user.ID, role); err != nil {
			return nil, err
		}
		user.Role = role
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("update user: hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// UpdateRole cambia el rol en una sola escritura. Los tokens ya emitidos conservan el
// rol anterior hasta expirar o renovarse.
func (uc *UserUseCase) UpdateRole(ctx context.Context, actor *authz.Principal, id string, in dto.UpdateRoleRequest) (*dto.UserResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	role, err := authz.ParseRole(in.Role)
	if err != nil {
		return nil, domain.NewValidationError("rol inválido", map[string]string{"role": err.Error()})
	}
	if err := guardSelfDemotion(actor, id, role); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete baja de un usuario. Nadie puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, actor *authz.Principal, id string) error {
	if actor != nil && actor.UserID == id {
		return fmt.Errorf("%w: no puedes eliminar tu propia cuenta", domain.ErrConflict)
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *UserUseCase) get(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func guardSelfDemotion(actor *authz.Principal, targetID string, role authz.Role) error {
	if actor != nil && actor.UserID == targetID && actor.IsAdmin() && role != authz.RoleAdmin {
		return fmt.Errorf("%w: no puedes quitarte el rol de administrador", domain.ErrConflict)
	}
	return nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		UserName:  u.UserName,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		RoleID:    u.Role.ID(),
		RoleName:  u.Role.DisplayName(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
