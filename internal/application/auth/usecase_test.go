package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ecorecoleccion-api/internal/application/auth"
	"github.com/jhoicas/ecorecoleccion-api/internal/application/dto"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain/entity"
	"github.com/jhoicas/ecorecoleccion-api/internal/testutil"
	"github.com/jhoicas/ecorecoleccion-api/pkg/authz"
	pkgjwt "github.com/jhoicas/ecorecoleccion-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const testPassword = "Secreta_99"

func newUser(t *testing.T, id, userName, email string, role authz.Role) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{
		ID: id, UserName: userName, Email: email, PasswordHash: string(hash),
		FirstName: "Ana", LastName: "Pérez", Role: role,
	}
}

func setup(t *testing.T, users ...*entity.User) (*auth.AuthUseCase, *testutil.UserRepo, *pkgjwt.Manager) {
	t.Helper()
	repo := testutil.NewUserRepo(users...)
	mgr, err := pkgjwt.NewManager("test-secret", "ecorecoleccion-test", 60)
	require.NoError(t, err)
	return auth.NewAuthUseCase(repo, mgr).WithBcryptCost(bcrypt.MinCost), repo, mgr
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_OK_TokenConIdentidadYRol(t *testing.T) {
	u := newUser(t, "11111111-1111-1111-1111-111111111111", "ana", "ana@eco.co", authz.RoleRequester)
	uc, _, mgr := setup(t, u)

	res, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ANA@eco.co ", Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)
	assert.Equal(t, authz.RoleRequester, res.User.Role)
	assert.True(t, res.ExpiresAt.After(time.Now()))

	claims, err := mgr.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "ana@eco.co", claims.Email)
	assert.Equal(t, authz.RoleRequester, claims.Role)
}

func TestLogin_CorreoDesconocidoYPasswordIncorrectaDanElMismoError(t *testing.T) {
	u := newUser(t, "11111111-1111-1111-1111-111111111111", "ana", "ana@eco.co", authz.RoleRequester)
	uc, _, _ := setup(t, u)

	_, errUnknown := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@eco.co", Password: testPassword})
	_, errWrong := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@eco.co", Password: "Otra_clave1"})

	assert.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, domain.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestLogin_EntradaInvalida(t *testing.T) {
	uc, _, _ := setup(t)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "no-es-correo", Password: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLogin_FalloDelAlmacenNoEsCredencialInvalida(t *testing.T) {
	uc, repo, _ := setup(t)
	repo.Err = errors.New("conexión rechazada")
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@eco.co", Password: testPassword})
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrInvalidCredentials))
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func validRegister() dto.RegisterRequest {
	return dto.RegisterRequest{
		UserName: "nuevo_1", Email: "Nuevo@Eco.co", Password: "Abcdef1!",
		FirstName: "Nuevo", LastName: "Usuario",
	}
}

func TestRegister_SiempreCreaSolicitante(t *testing.T) {
	uc, repo, _ := setup(t)
	res, err := uc.Register(context.Background(), validRegister())
	require.NoError(t, err)
	assert.Equal(t, authz.RoleRequester, res.Role)
	assert.Equal(t, 3, res.RoleID)
	assert.Equal(t, "nuevo@eco.co", res.Email)

	stored, err := repo.GetByID(context.Background(), res.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Abcdef1!")))
}

func TestRegister_Duplicados(t *testing.T) {
	u := newUser(t, "11111111-1111-1111-1111-111111111111", "ana", "ana@eco.co", authz.RoleRequester)
	uc, _, _ := setup(t, u)

	in := validRegister()
	in.Email = "ANA@eco.co"
	_, err := uc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	in = validRegister()
	in.UserName = "ana"
	_, err = uc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrUserNameAlreadyExists)
}

func TestRegister_PasswordDebil(t *testing.T) {
	uc, _, _ := setup(t)
	in := validRegister()
	in.Password = "abcdefgh"
	_, err := uc.Register(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrValidation)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "password")
}

// ──────────────────────────────────────────────────────────────────────────────
// Me / Session / Refresh
// ──────────────────────────────────────────────────────────────────────────────

func TestSession_PermisosYMenuDelRol(t *testing.T) {
	u := newUser(t, "22222222-2222-2222-2222-222222222222", "reco", "reco@eco.co", authz.RoleCollector)
	uc, _, _ := setup(t, u)
	p := u.Principal()

	s, err := uc.Session(context.Background(), &p)
	require.NoError(t, err)
	assert.Equal(t, authz.RoleCollector, s.Role)
	assert.Equal(t, authz.PermissionsFor(authz.RoleCollector), s.Permissions)
	require.NotEmpty(t, s.Navigation)
	assert.Equal(t, "Dashboard", s.Navigation[0].Name)
}

func TestMe_UsuarioEliminadoEsNoAutenticado(t *testing.T) {
	uc, _, _ := setup(t)
	p := authz.Principal{UserID: "33333333-3333-3333-3333-333333333333", Role: authz.RoleRequester}
	_, err := uc.Me(context.Background(), &p)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = uc.Me(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

// Un cambio de rol no altera los tokens ya emitidos: el token viejo sigue diciendo
// "usuario" hasta que se renueva.
func TestRefresh_CambioDeRolSoloLlegaAlReemitir(t *testing.T) {
	u := newUser(t, "44444444-4444-4444-4444-444444444444", "ana", "ana@eco.co", authz.RoleRequester)
	uc, repo, mgr := setup(t, u)
	ctx := context.Background()

	login, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@eco.co", Password: testPassword})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateRole(ctx, u.ID, authz.RoleCollector))

	old, err := mgr.Parse(login.Token)
	require.NoError(t, err)
	assert.Equal(t, authz.RoleRequester, old.Role, "el token original conserva el rol de emisión")

	refreshed, err := uc.Refresh(ctx, old.Principal())
	require.NoError(t, err)
	fresh, err := mgr.Parse(refreshed.Token)
	require.NoError(t, err)
	assert.Equal(t, authz.RoleCollector, fresh.Role)
	assert.Equal(t, authz.RoleCollector, refreshed.User.Role)
}
