package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecorecoleccion-api/internal/application/dto"
	"github.com/jhoicas/ecorecoleccion-api/internal/application/usecase"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain/entity"
	"github.com/jhoicas/ecorecoleccion-api/internal/testutil"
	"github.com/jhoicas/ecorecoleccion-api/pkg/authz"
)

// ──────────────────────────────────────────────────────────────────────────────
// CollectionRequestUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestRequestCreate_SiempreANombreDelPrincipal(t *testing.T) {
	uc := usecase.NewCollectionRequestUseCase(testutil.NewRequestRepo())
	res, err := uc.Create(context.Background(), asRequester, dto.CreateCollectionRequestRequest{
		Description: "Reciclaje de cartón", Address: "Calle 10 # 5-20", PreferredDate: "2999-01-15",
	})
	require.NoError(t, err)
	assert.Equal(t, requesterID, res.UserID)
	assert.Equal(t, entity.RequestPending, res.Status)
	assert.Equal(t, "2999-01-15", res.PreferredDate)
}

func TestRequestCreate_FechaPasada(t *testing.T) {
	uc := usecase.NewCollectionRequestUseCase(testutil.NewRequestRepo())
	_, err := uc.Create(context.Background(), asRequester, dto.CreateCollectionRequestRequest{
		Description: "Reciclaje de cartón", Address: "Calle 10 # 5-20", PreferredDate: "2000-01-01",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Create(context.Background(), nil, dto.CreateCollectionRequestRequest{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestRequestList_SolicitanteVeLasSuyasAdminTodas(t *testing.T) {
	repo := testutil.NewRequestRepo(
		&entity.CollectionRequest{ID: "r1", UserID: requesterID, Status: entity.RequestPending, CreatedAt: time.Now()},
		&entity.CollectionRequest{ID: "r2", UserID: otherReqID, Status: entity.RequestApproved, CreatedAt: time.Now()},
	)
	uc := usecase.NewCollectionRequestUseCase(repo)
	ctx := context.Background()

	mine, err := uc.List(ctx, asRequester, dto.ListCollectionRequestsRequest{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "r1", mine[0].ID)

	all, err := uc.List(ctx, asAdmin, dto.ListCollectionRequestsRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	approved, err := uc.List(ctx, asAdmin, dto.ListCollectionRequestsRequest{Status: entity.RequestApproved})
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "r2", approved[0].ID)
}

func TestRequestUpdateStatus_VocabularioYExistencia(t *testing.T) {
	repo := testutil.NewRequestRepo(&entity.CollectionRequest{ID: "r1", UserID: requesterID, Status: entity.RequestPending})
	uc := usecase.NewCollectionRequestUseCase(repo)
	ctx := context.Background()

	_, err := uc.UpdateStatus(ctx, "r1", dto.StatusUpdateRequest{Status: "cancelada"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	res, err := uc.UpdateStatus(ctx, "r1", dto.StatusUpdateRequest{Status: entity.RequestApproved})
	require.NoError(t, err)
	assert.Equal(t, entity.RequestApproved, res.Status)

	_, err = uc.UpdateStatus(ctx, "nope", dto.StatusUpdateRequest{Status: entity.RequestApproved})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// RouteUseCase
// ──────────────────────────────────────────────────────────────────────────────

const (
	routeID          = "ffffffff-0000-0000-0000-000000000001"
	completedRouteID = "ffffffff-0000-0000-0000-000000000002"
	freeRouteID      = "ffffffff-0000-0000-0000-000000000003"
	pointID          = "ffffffff-1111-0000-0000-000000000001"
)

func fixtureRoutes() []*entity.Route {
	return []*entity.Route{
		{ID: routeID, Name: "Ruta Norte", CollectorID: collectorID, Status: entity.RouteAssigned,
			Points: []entity.RoutePoint{{ID: pointID, RouteID: routeID, Address: "Cra 1", Status: entity.PointPending, Order: 1}}},
		{ID: completedRouteID, Name: "Ruta Sur", CollectorID: collectorID, Status: entity.RouteCompleted},
		{ID: freeRouteID, Name: "Ruta Libre", Status: entity.RouteAssigned},
	}
}

func newRouteUseCase() (*usecase.RouteUseCase, *testutil.RouteRepo) {
	users := testutil.NewUserRepo(fixtureUsers()...)
	routes := testutil.NewRouteRepo(fixtureRoutes()...)
	routes.Users = users
	return usecase.NewRouteUseCase(routes, &testutil.TxRunner{Routes: routes, Users: users}), routes
}

func TestRouteCreate_ConPuntosOrdenados(t *testing.T) {
	uc, repo := newRouteUseCase()
	res, err := uc.Create(context.Background(), dto.CreateRouteRequest{
		Name: "Ruta Centro", CollectorID: collectorID,
		Points: []dto.RoutePointRequest{{Address: "Calle 1"}, {Address: "Calle 2"}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RouteAssigned, res.Status)
	assert.Equal(t, "Rita Reco", res.CollectorName)
	require.Len(t, res.Points, 2)
	assert.Equal(t, 1, res.Points[0].Order)
	assert.Equal(t, 2, res.Points[1].Order)

	stored, err := repo.GetByID(context.Background(), res.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Len(t, stored.Points, 2)
}

func TestRouteCreate_RecolectorInvalidoNoPersisteNada(t *testing.T) {
	uc, repo := newRouteUseCase()
	_, err := uc.Create(context.Background(), dto.CreateRouteRequest{Name: "Ruta X", CollectorID: requesterID})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Create(context.Background(), dto.CreateRouteRequest{
		Name: "Ruta Y", CollectorID: "bbbbbbbb-0000-0000-0000-00000000ffff",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	list, err := repo.List(context.Background(), "Ruta ")
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestRouteUpdateStatus_SoloRecolectorAsignadoOAdmin(t *testing.T) {
	uc, _ := newRouteUseCase()
	ctx := context.Background()

	_, err := uc.UpdateStatus(ctx, asOtherColl, routeID, dto.StatusUpdateRequest{Status: entity.RouteInProgress})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	res, err := uc.UpdateStatus(ctx, asCollector, routeID, dto.StatusUpdateRequest{Status: entity.RouteInProgress})
	require.NoError(t, err)
	assert.Equal(t, entity.RouteInProgress, res.Status)

	_, err = uc.UpdateStatus(ctx, asCollector, freeRouteID, dto.StatusUpdateRequest{Status: entity.RouteInProgress})
	assert.ErrorIs(t, err, domain.ErrForbidden, "una ruta sin asignar solo la opera un administrador")

	_, err = uc.UpdateStatus(ctx, asAdmin, freeRouteID, dto.StatusUpdateRequest{Status: entity.RouteCompleted})
	assert.NoError(t, err)

	_, err = uc.UpdateStatus(ctx, asAdmin, routeID, dto.StatusUpdateRequest{Status: "cerrada"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRouteUpdatePointStatus(t *testing.T) {
	uc, repo := newRouteUseCase()
	ctx := context.Background()

	_, err := uc.UpdatePointStatus(ctx, asOtherColl, pointID, dto.StatusUpdateRequest{Status: entity.PointCompleted})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	res, err := uc.UpdatePointStatus(ctx, asCollector, pointID, dto.StatusUpdateRequest{Status: entity.PointCompleted})
	require.NoError(t, err)
	assert.Equal(t, entity.PointCompleted, res.Status)

	p, err := repo.GetPoint(ctx, pointID)
	require.NoError(t, err)
	assert.Equal(t, entity.PointCompleted, p.Status)

	_, err = uc.UpdatePointStatus(ctx, asAdmin, "no-existe", dto.StatusUpdateRequest{Status: entity.PointCompleted})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// CollectionUseCase
// ──────────────────────────────────────────────────────────────────────────────

func newCollectionUseCase(items ...*entity.Collection) (*usecase.CollectionUseCase, *testutil.CollectionRepo) {
	users := testutil.NewUserRepo(fixtureUsers()...)
	wasteTypes := testutil.NewWasteTypeRepo(fixtureWasteTypes()...)
	routes := testutil.NewRouteRepo(fixtureRoutes()...)
	repo := testutil.NewCollectionRepo(users, wasteTypes, routes, items...)
	return usecase.NewCollectionUseCase(repo, users, wasteTypes, routes), repo
}

func validCollection() dto.CreateCollectionRequest {
	return dto.CreateCollectionRequest{
		Name: "Botellas", Date: "2026-03-10", UserID: requesterID, WasteTypeID: plasticID,
	}
}

func TestCollectionCreate_RegistraPrincipalYResuelveNombres(t *testing.T) {
	uc, _ := newCollectionUseCase()
	in := validCollection()
	in.RouteID = routeID
	res, err := uc.Create(context.Background(), asCollector, in)
	require.NoError(t, err)
	assert.Equal(t, collectorID, res.RegisteredBy)
	assert.Equal(t, requesterID, res.UserID)
	assert.Equal(t, entity.CollectionPending, res.Status)
	assert.Equal(t, "Plástico PET", res.WasteTypeName)
	assert.Equal(t, "Ruta Norte", res.RouteName)
	assert.True(t, res.Points.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "2026-03-10", res.Date)
}

func TestCollectionCreate_ReferenciasInvalidas(t *testing.T) {
	uc, _ := newCollectionUseCase()
	ctx := context.Background()

	in := validCollection()
	in.UserID = "cccccccc-0000-0000-0000-00000000ffff"
	_, err := uc.Create(ctx, asCollector, in)
	assert.ErrorIs(t, err, domain.ErrValidation)

	in = validCollection()
	in.WasteTypeID = inactiveID
	_, err = uc.Create(ctx, asCollector, in)
	assert.ErrorIs(t, err, domain.ErrValidation)

	in = validCollection()
	in.Date = "10/03/2026"
	_, err = uc.Create(ctx, asCollector, in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCollectionCreate_RutaCompletadaYRutaAjena(t *testing.T) {
	uc, _ := newCollectionUseCase()
	ctx := context.Background()

	in := validCollection()
	in.RouteID = completedRouteID
	_, err := uc.Create(ctx, asCollector, in)
	assert.ErrorIs(t, err, domain.ErrConflict)

	in.RouteID = routeID
	_, err = uc.Create(ctx, asOtherColl, in)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	in.RouteID = freeRouteID
	_, err = uc.Create(ctx, asOtherColl, in)
	assert.NoError(t, err, "una ruta sin asignar la usa cualquier recolector")
}

func seededCollections() []*entity.Collection {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return []*entity.Collection{
		{ID: "c1", Name: "Botellas", Date: day, UserID: requesterID, WasteTypeID: plasticID, RegisteredBy: collectorID, Status: entity.CollectionPending},
		{ID: "c2", Name: "Frascos", Date: day.AddDate(0, 0, 1), UserID: otherReqID, WasteTypeID: glassID, RegisteredBy: otherCollID, Status: entity.CollectionCompleted},
	}
}

func TestCollectionGet_AjenaRespondeComoInexistente(t *testing.T) {
	uc, _ := newCollectionUseCase(seededCollections()...)
	ctx := context.Background()

	_, err := uc.GetByID(ctx, asOtherReq, "c1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	for _, p := range []*authz.Principal{asRequester, asCollector, asAdmin} {
		res, err := uc.GetByID(ctx, p, "c1")
		require.NoError(t, err, p.UserID)
		assert.Equal(t, "c1", res.ID)
	}
}

func TestCollectionList_VisibilidadPorParticipacion(t *testing.T) {
	uc, _ := newCollectionUseCase(seededCollections()...)
	ctx := context.Background()

	ids := func(p *authz.Principal) []string {
		list, err := uc.List(ctx, p, dto.ListCollectionsRequest{})
		require.NoError(t, err)
		var out []string
		for _, c := range list {
			out = append(out, c.ID)
		}
		return out
	}
	assert.Equal(t, []string{"c1"}, ids(asRequester))
	assert.Equal(t, []string{"c1"}, ids(asCollector))
	assert.Equal(t, []string{"c2"}, ids(asOtherColl))
	assert.Equal(t, []string{"c2", "c1"}, ids(asAdmin))
}

func TestCollectionUpdateStatus(t *testing.T) {
	uc, _ := newCollectionUseCase(seededCollections()...)
	ctx := context.Background()

	_, err := uc.UpdateStatus(ctx, asOtherColl, "c1", dto.StatusUpdateRequest{Status: entity.CollectionCompleted})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.UpdateStatus(ctx, asCollector, "c1", dto.StatusUpdateRequest{Status: "perdida"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	res, err := uc.UpdateStatus(ctx, asCollector, "c1", dto.StatusUpdateRequest{Status: entity.CollectionCompleted})
	require.NoError(t, err)
	assert.Equal(t, entity.CollectionCompleted, res.Status)
}

func TestCollectionAssignRoute(t *testing.T) {
	uc, repo := newCollectionUseCase(seededCollections()...)
	ctx := context.Background()

	_, err := uc.AssignRoute(ctx, asCollector, "c1", dto.AssignRouteRequest{RouteID: completedRouteID})
	assert.ErrorIs(t, err, domain.ErrConflict)

	res, err := uc.AssignRoute(ctx, asCollector, "c1", dto.AssignRouteRequest{RouteID: routeID})
	require.NoError(t, err)
	assert.Equal(t, "Ruta Norte", res.RouteName)

	v, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, routeID, v.RouteID)
}
