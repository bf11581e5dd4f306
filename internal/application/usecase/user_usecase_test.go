package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ecorecoleccion-api/internal/application/dto"
	"github.com/jhoicas/ecorecoleccion-api/internal/application/usecase"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain/entity"
	"github.com/jhoicas/ecorecoleccion-api/internal/testutil"
	"github.com/jhoicas/ecorecoleccion-api/pkg/authz"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	adminID     = "aaaaaaaa-0000-0000-0000-000000000001"
	collectorID = "bbbbbbbb-0000-0000-0000-000000000002"
	otherCollID = "bbbbbbbb-0000-0000-0000-000000000003"
	requesterID = "cccccccc-0000-0000-0000-000000000004"
	otherReqID  = "cccccccc-0000-0000-0000-000000000005"
)

func fixtureUsers() []*entity.User {
	return []*entity.User{
		{ID: adminID, UserName: "admin", Email: "admin@eco.co", FirstName: "Ada", LastName: "Admin", Role: authz.RoleAdmin},
		{ID: collectorID, UserName: "reco", Email: "reco@eco.co", FirstName: "Rita", LastName: "Reco", Role: authz.RoleCollector},
		{ID: otherCollID, UserName: "reco2", Email: "reco2@eco.co", FirstName: "Raúl", LastName: "Reco", Role: authz.RoleCollector},
		{ID: requesterID, UserName: "ana", Email: "ana@eco.co", FirstName: "Ana", LastName: "Pérez", Role: authz.RoleRequester},
		{ID: otherReqID, UserName: "beto", Email: "beto@eco.co", FirstName: "Beto", LastName: "Gómez", Role: authz.RoleRequester},
	}
}

func principal(id string, role authz.Role) *authz.Principal {
	return &authz.Principal{UserID: id, Email: id + "@eco.co", Role: role}
}

var (
	asAdmin     = principal(adminID, authz.RoleAdmin)
	asCollector = principal(collectorID, authz.RoleCollector)
	asOtherColl = principal(otherCollID, authz.RoleCollector)
	asRequester = principal(requesterID, authz.RoleRequester)
	asOtherReq  = principal(otherReqID, authz.RoleRequester)
)

func newUserUseCase() (*usecase.UserUseCase, *testutil.UserRepo) {
	repo := testutil.NewUserRepo(fixtureUsers()...)
	return usecase.NewUserUseCase(repo).WithBcryptCost(bcrypt.MinCost), repo
}

// ──────────────────────────────────────────────────────────────────────────────
// UserUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestUserList_FiltraPorRolYPagina(t *testing.T) {
	uc, _ := newUserUseCase()
	res, err := uc.List(context.Background(), dto.ListUsersRequest{Role: "recolector"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Page.Total)
	assert.Equal(t, 20, res.Page.Limit)
	for _, u := range res.Items {
		assert.Equal(t, authz.RoleCollector, u.Role)
		assert.Equal(t, 2, u.RoleID)
	}

	res, err = uc.List(context.Background(), dto.ListUsersRequest{
		PageRequest: dto.PageRequest{Limit: 2, Offset: 4},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Page.Total)
	assert.Len(t, res.Items, 1)
}

func TestUserList_RolDesconocido(t *testing.T) {
	uc, _ := newUserUseCase()
	_, err := uc.List(context.Background(), dto.ListUsersRequest{Role: "superusuario"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUserCreate_ConRolPorIDYHash(t *testing.T) {
	uc, repo := newUserUseCase()
	res, err := uc.Create(context.Background(), dto.CreateUserRequest{
		UserName: "nuevo_reco", Email: " Nuevo@Eco.co", Password: "Abcdef1!",
		FirstName: "Nuevo", LastName: "Reco", Role: "2",
	})
	require.NoError(t, err)
	assert.Equal(t, authz.RoleCollector, res.Role)
	assert.Equal(t, "nuevo@eco.co", res.Email)

	stored, err := repo.GetByID(context.Background(), res.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Abcdef1!")))
}

func TestUserCreate_CorreoDuplicado(t *testing.T) {
	uc, _ := newUserUseCase()
	_, err := uc.Create(context.Background(), dto.CreateUserRequest{
		UserName: "otra_ana", Email: "ana@eco.co", Password: "Abcdef1!",
		FirstName: "Ana", LastName: "Otra", Role: "usuario",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserUpdate_ParcialConservaCampos(t *testing.T) {
	uc, _ := newUserUseCase()
	res, err := uc.Update(context.Background(), asAdmin, requesterID, dto.UpdateUserRequest{FirstName: "Anita"})
	require.NoError(t, err)
	assert.Equal(t, "Anita", res.FirstName)
	assert.Equal(t, "Pérez", res.LastName)
	assert.Equal(t, "ana@eco.co", res.Email)
	assert.Equal(t, authz.RoleRequester, res.Role)
}

func TestUserUpdate_Inexistente(t *testing.T) {
	uc, _ := newUserUseCase()
	_, err := uc.Update(context.Background(), asAdmin, "99999999-9999-9999-9999-999999999999", dto.UpdateUserRequest{FirstName: "X"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserUpdateRole_CambiaYSeLee(t *testing.T) {
	uc, _ := newUserUseCase()
	res, err := uc.UpdateRole(context.Background(), asAdmin, requesterID, dto.UpdateRoleRequest{Role: "recolector"})
	require.NoError(t, err)
	assert.Equal(t, authz.RoleCollector, res.Role)
	assert.Equal(t, "Recolector", res.RoleName)
}

func TestUserUpdateRole_AdminNoSeDegradaASiMismo(t *testing.T) {
	uc, repo := newUserUseCase()
	_, err := uc.UpdateRole(context.Background(), asAdmin, adminID, dto.UpdateRoleRequest{Role: "usuario"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Update(context.Background(), asAdmin, adminID, dto.UpdateUserRequest{Role: "recolector"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	u, err := repo.GetByID(context.Background(), adminID)
	require.NoError(t, err)
	assert.Equal(t, authz.RoleAdmin, u.Role)
}

func TestUserDelete_NoPuedeBorrarseASiMismo(t *testing.T) {
	uc, _ := newUserUseCase()
	assert.ErrorIs(t, uc.Delete(context.Background(), asAdmin, adminID), domain.ErrConflict)
	require.NoError(t, uc.Delete(context.Background(), asAdmin, otherReqID))
	_, err := uc.GetByID(context.Background(), otherReqID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserGetBasic_SinDatosSensibles(t *testing.T) {
	uc, _ := newUserUseCase()
	res, err := uc.GetBasic(context.Background(), requesterID)
	require.NoError(t, err)
	assert.Equal(t, "ana", res.UserName)
	assert.Equal(t, "Ana", res.FirstName)
}
