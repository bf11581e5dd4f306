package repository

import (
	"context"

	"github.com/jhoicas/ecorecoleccion-api/internal/domain/entity"
)

// CriterionFilter filtros del directorio de criterios.
type CriterionFilter struct {
	DataType string
	Status   string
	Search   string
}

// CriterionRepository define el puerto de persistencia para criterios y sus asociaciones (DIP).
type CriterionRepository interface {
	Create(ctx context.Context, c *entity.Criterion) error
	GetByID(ctx context.Context, id string) (*entity.Criterion, error)
	Update(ctx context.Context, c *entity.Criterion) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f CriterionFilter) ([]*entity.Criterion, error)

	Associate(ctx context.Context, a *entity.WasteTypeCriterion) error
	Dissociate(ctx context.Context, wasteTypeID, criterionID string) error
	ListByWasteType(ctx context.Context, wasteTypeID string) ([]*entity.WasteTypeCriterion, error)
}
