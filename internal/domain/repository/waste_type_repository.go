package repository

import (
	"context"

	"github.com/jhoicas/ecorecoleccion-api/internal/domain/entity"
)

// WasteTypeFilter filtros del catálogo.
type WasteTypeFilter struct {
	Category string
	Status   string
	Search   string
}

// WasteTypeRepository define el puerto de persistencia para el catálogo de residuos (DIP).
type WasteTypeRepository interface {
	Create(ctx context.Context, wt *entity.WasteType) error
	GetByID(ctx context.Context, id string) (*entity.WasteType, error)
	Update(ctx context.Context, wt *entity.WasteType) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f WasteTypeFilter) ([]*entity.WasteType, error)
	Categories(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) (*entity.WasteTypeStats, error)
	// CountCriteria número de criterios asociados (bloquea el borrado).
	CountCriteria(ctx context.Context, wasteTypeID string) (int, error)
}
