package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ecorecoleccion-api/internal/application/dto"
	"github.com/jhoicas/ecorecoleccion-api/internal/application/validation"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain/entity"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain/repository"
	"github.com/jhoicas/ecorecoleccion-api/pkg/authz"
	"github.com/jhoicas/ecorecoleccion-api/pkg/ui"
)

// TokenIssuer firma tokens de sesión (implementado por *jwt.Manager).
type TokenIssuer interface {
	Generate(p authz.Principal) (string, time.Time, error)
}

// AuthUseCase casos de uso de autenticación: registro, login, perfil, sesión y renovación.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	tokens     TokenIssuer
	bcryptCost int
	now        func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tokens TokenIssuer) *AuthUseCase {
	return &AuthUseCase{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

// WithBcryptCost cambia el costo de bcrypt (tests usan bcrypt.MinCost).
func (uc *AuthUseCase) WithBcryptCost(cost int) *AuthUseCase {
	uc.bcryptCost = cost
	return uc
}

// Register crea un solicitante. El rol nunca se toma de la entrada: los demás roles
// solo se asignan desde la administración de usuarios.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	in.UserName = strings.TrimSpace(in.UserName)
	in.Email = strings.TrimSpace(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	email := entity.NormalizeEmail(in.Email)

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	existing, err = uc.userRepo.GetByUserName(ctx, in.UserName)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrUserNameAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		UserName:     in.UserName,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         authz.RoleRequester,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica correo y contraseña y emite un token con {id, email, rol, iat, exp}.
// Correo desconocido y contraseña incorrecta devuelven el mismo error; bcrypt se
// ejecuta en ambos casos para que el tiempo de respuesta no revele si la cuenta existe.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByEmail(ctx, entity.NormalizeEmail(in.Email))
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(uc.dummy(), []byte(in.Password))
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return uc.issue(user)
}

// Refresh relee al principal y emite un token con el rol vigente en el almacén.
// Es la forma de que un cambio de rol llegue a una sesión activa antes de expirar.
func (uc *AuthUseCase) Refresh(ctx context.Context, p *authz.Principal) (*dto.LoginResponse, error) {
	user, err := uc.current(ctx, p)
	if err != nil {
		return nil, err
	}
	return uc.issue(user)
}

// Me perfil almacenado del principal.
func (uc *AuthUseCase) Me(ctx context.Context, p *authz.Principal) (*dto.UserResponse, error) {
	user, err := uc.current(ctx, p)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Session perfil + rol + permisos + menú. El rol y los permisos son los del token,
// que es lo que el gateway aplica mientras el token siga vigente.
func (uc *AuthUseCase) Session(ctx context.Context, p *authz.Principal) (*dto.SessionResponse, error) {
	user, err := uc.current(ctx, p)
	if err != nil {
		return nil, err
	}
	nav := ui.Navigation(p)
	if nav == nil {
		nav = []ui.NavigationItem{}
	}
	return &dto.SessionResponse{
		User:        *toUserResponse(user),
		Role:        p.Role,
		Permissions: authz.PermissionsFor(p.Role),
		Navigation:  nav,
	}, nil
}

func (uc *AuthUseCase) current(ctx context.Context, p *authz.Principal) (*entity.User, error) {
	if p == nil {
		return nil, domain.ErrUnauthenticated
	}
	user, err := uc.userRepo.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("auth: get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: el usuario ya no existe", domain.ErrUnauthenticated)
	}
	return user, nil
}

func (uc *AuthUseCase) issue(user *entity.User) (*dto.LoginResponse, error) {
	token, exp, err := uc.tokens.Generate(user.Principal())
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      *toUserResponse(user),
	}, nil
}

func (uc *AuthUseCase) dummy() []byte {
	uc.dummyOnce.Do(func() {
		uc.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("ecorecoleccion-dummy"), uc.bcryptCost)
	})
	return uc.dummyHash
}

func toUserResponse(u *entity.User) *dto.UserResponse {
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
