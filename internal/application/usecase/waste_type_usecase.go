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

// WasteTypeUseCase catálogo de tipos de residuo.
type WasteTypeUseCase struct {
	repo      repository.WasteTypeRepository
	criterion repository.CriterionRepository
	now       func() time.Time
}

// NewWasteTypeUseCase construye el caso de uso.
func NewWasteTypeUseCase(repo repository.WasteTypeRepository, criterion repository.CriterionRepository) *WasteTypeUseCase {
	return &WasteTypeUseCase{repo: repo, criterion: criterion, now: time.Now}
}

// Create alta de un tipo de residuo (estado activo por defecto).
func (uc *WasteTypeUseCase) Create(ctx context.Context, in dto.WasteTypeRequest) (*dto.WasteTypeResponse, error) {
	if err := validateWasteType(&in); err != nil {
		return nil, err
	}
	now := uc.now()
	wt := &entity.WasteType{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		BaseScore:   in.BaseScore,
		Category:    in.Category,
		Status:      in.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, wt); err != nil {
		return nil, err
	}
	return toWasteTypeResponse(wt), nil
}

// GetByID obtiene un tipo de residuo. domain.ErrNotFound si no existe.
func (uc *WasteTypeUseCase) GetByID(ctx context.Context, id string) (*dto.WasteTypeResponse, error) {
	wt, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toWasteTypeResponse(wt), nil
}

// List catálogo filtrado.
func (uc *WasteTypeUseCase) List(ctx context.Context, in dto.WasteTypeListRequest) ([]dto.WasteTypeResponse, error) {
	list, err := uc.repo.List(ctx, repository.WasteTypeFilter{
		Category: strings.TrimSpace(in.Category),
		Status:   strings.TrimSpace(in.Status),
		Search:   strings.TrimSpace(in.Search),
	})
	if err != nil {
		return nil, fmt.Errorf("list waste types: %w", err)
	}
	out := make([]dto.WasteTypeResponse, 0, len(list))
	for _, wt := range list {
		out = append(out, *toWasteTypeResponse(wt))
	}
	return out, nil
}

// Update reescribe un tipo de residuo.
func (uc *WasteTypeUseCase) Update(ctx context.Context, id string, in dto.WasteTypeRequest) (*dto.WasteTypeResponse, error) {
	if err := validateWasteType(&in); err != nil {
		return nil, err
	}
	wt, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	wt.Name = in.Name
	wt.Description = in.Description
	wt.BaseScore = in.BaseScore
	wt.Category = in.Category
	wt.Status = in.Status
	wt.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, wt); err != nil {
		return nil, err
	}
	return toWasteTypeResponse(wt), nil
}

// Delete elimina un tipo de residuo sin criterios asociados.
func (uc *WasteTypeUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	n, err := uc.repo.CountCriteria(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: el tipo de residuo tiene %d criterio(s) asociado(s)", domain.ErrConflict, n)
	}
	return uc.repo.Delete(ctx, id)
}

// Categories categorías distintas del catálogo.
func (uc *WasteTypeUseCase) Categories(ctx context.Context) ([]string, error) {
	cats, err := uc.repo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if cats == nil {
		cats = []string{}
	}
	return cats, nil
}

// Stats agregados del catálogo.
func (uc *WasteTypeUseCase) Stats(ctx context.Context) (*dto.WasteTypeStatsResponse, error) {
	s, err := uc.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.WasteTypeStatsResponse{
		Total: s.Total, Categories: s.Categories, Active: s.Active, Inactive: s.Inactive,
		AverageScore: s.AverageScore, MaxScore: s.MaxScore, MinScore: s.MinScore,
	}, nil
}

// Criteria criterios asociados a un tipo de residuo.
func (uc *WasteTypeUseCase) Criteria(ctx context.Context, id string) ([]dto.WasteTypeCriterionResponse, error) {
	if _, err := uc.get(ctx, id); err != nil {
		return nil, err
	}
	list, err := uc.criterion.ListByWasteType(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WasteTypeCriterionResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toWasteTypeCriterionResponse(a))
	}
	return out, nil
}

func (uc *WasteTypeUseCase) get(ctx context.Context, id string) (*entity.WasteType, error) {
	wt, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get waste type: %w", err)
	}
	if wt == nil {
		return nil, fmt.Errorf("%w: tipo de residuo", domain.ErrNotFound)
	}
	return wt, nil
}

func validateWasteType(in *dto.WasteTypeRequest) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	in.Description = strings.TrimSpace(in.Description)
	if in.Status == "" {
		in.Status = entity.StatusActive
	}
	if err := validation.Struct(*in); err != nil {
		return err
	}
	if in.BaseScore.IsNegative() {
		return domain.NewValidationError("el puntaje base no puede ser negativo",
			map[string]string{"base_score": "debe ser mayor o igual a 0"})
	}
	if in.BaseScore.GreaterThan(decimal.NewFromInt(100000)) {
		return domain.NewValidationError("el puntaje base es demasiado alto",
			map[string]string{"base_score": "debe ser menor o igual a 100000"})
	}
	return nil
}

func toWasteTypeResponse(wt *entity.WasteType) *dto.WasteTypeResponse {
	return &dto.WasteTypeResponse{
		ID:          wt.ID,
		Name:        wt.Name,
		Description: wt.Description,
		BaseScore:   wt.BaseScore,
		Category:    wt.Category,
		Status:      wt.Status,
		CreatedAt:   wt.CreatedAt,
		UpdatedAt:   wt.UpdatedAt,
	}
}
