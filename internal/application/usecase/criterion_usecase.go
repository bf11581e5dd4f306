package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ecorecoleccion-api/internal/application/dto"
	"github.com/jhoicas/ecorecoleccion-api/internal/application/validation"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain/entity"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain/repository"
)

// CriterionUseCase directorio de criterios de puntaje y su asociación con el catálogo.
type CriterionUseCase struct {
	repo       repository.CriterionRepository
	wasteTypes repository.WasteTypeRepository
	now        func() time.Time
}

// NewCriterionUseCase construye el caso de uso.
func NewCriterionUseCase(repo repository.CriterionRepository, wasteTypes repository.WasteTypeRepository) *CriterionUseCase {
	return &CriterionUseCase{repo: repo, wasteTypes: wasteTypes, now: time.Now}
}

// Create alta de un criterio.
func (uc *CriterionUseCase) Create(ctx context.Context, in dto.CriterionRequest) (*dto.CriterionResponse, error) {
	if err := validateCriterion(&in); err != nil {
		return nil, err
	}
	now := uc.now()
	c := &entity.Criterion{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Description:   in.Description,
		DataType:      in.DataType,
		SelectOptions: in.SelectOptions,
		Required:      in.Required,
		DisplayOrder:  in.DisplayOrder,
		Status:        in.Status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCriterionResponse(c), nil
}

// GetByID obtiene un criterio.
func (uc *CriterionUseCase) GetByID(ctx context.Context, id string) (*dto.CriterionResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCriterionResponse(c), nil
}

// List directorio filtrado.
func (uc *CriterionUseCase) List(ctx context.Context, in dto.CriterionListRequest) ([]dto.CriterionResponse, error) {
	list, err := uc.repo.List(ctx, repository.CriterionFilter{
		DataType: strings.TrimSpace(in.DataType),
		Status:   strings.TrimSpace(in.Status),
		Search:   strings.TrimSpace(in.Search),
	})
	if err != nil {
		return nil, fmt.Errorf("list criteria: %w", err)
	}
	out := make([]dto.CriterionResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCriterionResponse(c))
	}
	return out, nil
}

// Update reescribe un criterio.
func (uc *CriterionUseCase) Update(ctx context.Context, id string, in dto.CriterionRequest) (*dto.CriterionResponse, error) {
	if err := validateCriterion(&in); err != nil {
		return nil, err
	}
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = in.Name
	c.Description = in.Description
	c.DataType = in.DataType
	c.SelectOptions = in.SelectOptions
	c.Required = in.Required
	c.DisplayOrder = in.DisplayOrder
	c.Status = in.Status
	c.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCriterionResponse(c), nil
}

// Delete elimina el criterio y sus asociaciones.
func (uc *CriterionUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// Associate vincula un criterio a un tipo de residuo. Multiplicador por defecto 1.
func (uc *CriterionUseCase) Associate(ctx context.Context, in dto.AssociateCriterionRequest) (*dto.WasteTypeCriterionResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	mult := decimal.NewFromInt(1)
	if in.ScoreMultiplier != nil {
		mult = *in.ScoreMultiplier
	}
	if !mult.IsPositive() {
		return nil, domain.NewValidationError("el multiplicador debe ser positivo",
			map[string]string{"score_multiplier": "debe ser mayor que 0"})
	}
	wt, err := uc.wasteTypes.GetByID(ctx, in.WasteTypeID)
	if err != nil {
		return nil, fmt.Errorf("get waste type: %w", err)
	}
	if wt == nil {
		return nil, fmt.Errorf("%w: tipo de residuo", domain.ErrNotFound)
	}
	c, err := uc.get(ctx, in.CriterionID)
	if err != nil {
		return nil, err
	}
	a := &entity.WasteTypeCriterion{
		ID:              uuid.New().String(),
		WasteTypeID:     wt.ID,
		CriterionID:     c.ID,
		DefaultValue:    strings.TrimSpace(in.DefaultValue),
		ScoreMultiplier: mult,
		Required:        in.Required,
		Status:          entity.StatusActive,
		Criterion:       c,
	}
	if err := uc.repo.Associate(ctx, a); err != nil {
		return nil, err
	}
	res := toWasteTypeCriterionResponse(a)
	return &res, nil
}

// Dissociate elimina el vínculo criterio ↔ tipo de residuo.
func (uc *CriterionUseCase) Dissociate(ctx context.Context, wasteTypeID, criterionID string) error {
	return uc.repo.Dissociate(ctx, wasteTypeID, criterionID)
}

func (uc *CriterionUseCase) get(ctx context.Context, id string) (*entity.Criterion, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get criterion: %w", err)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: criterio", domain.ErrNotFound)
	}
	return c, nil
}

// validateCriterion normaliza y valida. Solo los criterios de selección llevan opciones,
// y las necesitan.
func validateCriterion(in *dto.CriterionRequest) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if in.Status == "" {
		in.Status = entity.StatusActive
	}
	if err := validation.Struct(*in); err != nil {
		return err
	}
	if in.DataType != entity.CriterionSelect {
		in.SelectOptions = nil
		return nil
	}
	opts := make([]string, 0, len(in.SelectOptions))
	for _, o := range in.SelectOptions {
		if o = strings.TrimSpace(o); o != "" {
			opts = append(opts, o)
		}
	}
	if len(opts) == 0 {
		return domain.NewValidationError("un criterio de selección necesita opciones",
			map[string]string{"select_options": "debe tener al menos una opción"})
	}
	in.SelectOptions = opts
	return nil
}

func toCriterionResponse(c *entity.Criterion) *dto.CriterionResponse {
	opts := c.SelectOptions
	if opts == nil {
		opts = []string{}
	}
	return &dto.CriterionResponse{
		ID:            c.ID,
		Name:          c.Name,
		Description:   c.Description,
		DataType:      c.DataType,
		SelectOptions: opts,
		Required:      c.Required,
		DisplayOrder:  c.DisplayOrder,
		Status:        c.Status,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func toWasteTypeCriterionResponse(a *entity.WasteTypeCriterion) dto.WasteTypeCriterionResponse {
	res := dto.WasteTypeCriterionResponse{
		ID:              a.ID,
		WasteTypeID:     a.WasteTypeID,
		DefaultValue:    a.DefaultValue,
		ScoreMultiplier: a.ScoreMultiplier,
		Required:        a.Required,
		Status:          a.Status,
	}
	if a.Criterion != nil {
		res.Criterion = *toCriterionResponse(a.Criterion)
	} else {
		res.Criterion = dto.CriterionResponse{ID: a.CriterionID, SelectOptions: []string{}}
	}
	return res
}
