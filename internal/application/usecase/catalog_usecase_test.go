package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecorecoleccion-api/internal/application/dto"
	"github.com/jhoicas/ecorecoleccion-api/internal/application/usecase"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain/entity"
	"github.com/jhoicas/ecorecoleccion-api/internal/testutil"
)

const (
	plasticID  = "dddddddd-0000-0000-0000-000000000001"
	glassID    = "dddddddd-0000-0000-0000-000000000002"
	inactiveID = "dddddddd-0000-0000-0000-000000000003"
	cleanID    = "eeeeeeee-0000-0000-0000-000000000001"
)

func fixtureWasteTypes() []*entity.WasteType {
	return []*entity.WasteType{
		{ID: plasticID, Name: "Plástico PET", BaseScore: decimal.NewFromInt(10), Category: "plastico", Status: entity.StatusActive},
		{ID: glassID, Name: "Vidrio", BaseScore: decimal.NewFromInt(20), Category: "vidrio", Status: entity.StatusActive},
		{ID: inactiveID, Name: "Icopor", BaseScore: decimal.NewFromInt(5), Category: "plastico", Status: entity.StatusInactive},
	}
}

func newCatalog() (*usecase.WasteTypeUseCase, *usecase.CriterionUseCase) {
	criteria := testutil.NewCriterionRepo(&entity.Criterion{
		ID: cleanID, Name: "Limpio", DataType: entity.CriterionBoolean, Status: entity.StatusActive,
	})
	wasteTypes := testutil.NewWasteTypeRepo(fixtureWasteTypes()...)
	wasteTypes.Links = criteria
	return usecase.NewWasteTypeUseCase(wasteTypes, criteria), usecase.NewCriterionUseCase(criteria, wasteTypes)
}

// ──────────────────────────────────────────────────────────────────────────────
// WasteTypeUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestWasteTypeCreate_NormalizaCategoriaYEstado(t *testing.T) {
	wt, _ := newCatalog()
	res, err := wt.Create(context.Background(), dto.WasteTypeRequest{
		Name: " Cartón ", BaseScore: decimal.NewFromInt(8), Category: " Papel ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Cartón", res.Name)
	assert.Equal(t, "papel", res.Category)
	assert.Equal(t, entity.StatusActive, res.Status)
}

func TestWasteTypeCreate_PuntajeFueraDeRango(t *testing.T) {
	wt, _ := newCatalog()
	for _, score := range []int64{-1, 100001} {
		_, err := wt.Create(context.Background(), dto.WasteTypeRequest{
			Name: "Metal", BaseScore: decimal.NewFromInt(score), Category: "metal",
		})
		assert.ErrorIs(t, err, domain.ErrValidation, "score %d", score)
	}
}

func TestWasteTypeCreate_NombreDuplicado(t *testing.T) {
	wt, _ := newCatalog()
	_, err := wt.Create(context.Background(), dto.WasteTypeRequest{
		Name: "vidrio", BaseScore: decimal.NewFromInt(1), Category: "vidrio",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestWasteTypeList_FiltrosYCategorias(t *testing.T) {
	wt, _ := newCatalog()
	ctx := context.Background()

	list, err := wt.List(ctx, dto.WasteTypeListRequest{Category: "plastico", Status: entity.StatusActive})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, plasticID, list[0].ID)

	cats, err := wt.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"plastico", "vidrio"}, cats)

	stats, err := wt.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Active)
	assert.True(t, stats.MaxScore.Equal(decimal.NewFromInt(20)))
	assert.True(t, stats.MinScore.Equal(decimal.NewFromInt(5)))
}

func TestWasteTypeDelete_ConCriteriosAsociadosEsConflicto(t *testing.T) {
	wt, cr := newCatalog()
	ctx := context.Background()
	_, err := cr.Associate(ctx, dto.AssociateCriterionRequest{WasteTypeID: plasticID, CriterionID: cleanID})
	require.NoError(t, err)

	assert.ErrorIs(t, wt.Delete(ctx, plasticID), domain.ErrConflict)

	require.NoError(t, cr.Dissociate(ctx, plasticID, cleanID))
	require.NoError(t, wt.Delete(ctx, plasticID))
	_, err = wt.GetByID(ctx, plasticID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// CriterionUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestCriterionCreate_SeleccionRequiereOpciones(t *testing.T) {
	_, cr := newCatalog()
	_, err := cr.Create(context.Background(), dto.CriterionRequest{
		Name: "Color", DataType: entity.CriterionSelect, SelectOptions: []string{" ", ""},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	res, err := cr.Create(context.Background(), dto.CriterionRequest{
		Name: "Color", DataType: entity.CriterionSelect, SelectOptions: []string{" verde ", "ámbar"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"verde", "ámbar"}, res.SelectOptions)
}

func TestCriterionCreate_OpcionesSeDescartanSiNoEsSeleccion(t *testing.T) {
	_, cr := newCatalog()
	res, err := cr.Create(context.Background(), dto.CriterionRequest{
		Name: "Peso", DataType: entity.CriterionNumber, SelectOptions: []string{"x"},
	})
	require.NoError(t, err)
	assert.Empty(t, res.SelectOptions)
}

func TestCriterionAssociate_MultiplicadorPorDefectoYDuplicado(t *testing.T) {
	wt, cr := newCatalog()
	ctx := context.Background()

	res, err := cr.Associate(ctx, dto.AssociateCriterionRequest{WasteTypeID: glassID, CriterionID: cleanID})
	require.NoError(t, err)
	assert.True(t, res.ScoreMultiplier.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, "Limpio", res.Criterion.Name)

	_, err = cr.Associate(ctx, dto.AssociateCriterionRequest{WasteTypeID: glassID, CriterionID: cleanID})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	linked, err := wt.Criteria(ctx, glassID)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, cleanID, linked[0].Criterion.ID)
}

func TestCriterionAssociate_MultiplicadorNoPositivo(t *testing.T) {
	_, cr := newCatalog()
	zero := decimal.Zero
	_, err := cr.Associate(context.Background(), dto.AssociateCriterionRequest{
		WasteTypeID: glassID, CriterionID: cleanID, ScoreMultiplier: &zero,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCriterionAssociate_Inexistentes(t *testing.T) {
	_, cr := newCatalog()
	_, err := cr.Associate(context.Background(), dto.AssociateCriterionRequest{
		WasteTypeID: "dddddddd-0000-0000-0000-00000000ffff", CriterionID: cleanID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = cr.Associate(context.Background(), dto.AssociateCriterionRequest{
		WasteTypeID: glassID, CriterionID: "eeeeeeee-0000-0000-0000-00000000ffff",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
