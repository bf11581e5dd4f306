package repository

import (
	"context"

	"github.com/jhoicas/ecorecoleccion-api/internal/domain/entity"
)

// RouteRepository define el puerto de persistencia para rutas y sus puntos (DIP).
type RouteRepository interface {
	// Create inserta la ruta y sus puntos.
	Create(ctx context.Context, r *entity.Route) error
	GetByID(ctx context.Context, id string) (*entity.Route, error)
	List(ctx context.Context, search string) ([]*entity.Route, error)
	UpdateStatus(ctx context.Context, id, status string) error
	GetPoint(ctx context.Context, pointID string) (*entity.RoutePoint, error)
	UpdatePointStatus(ctx context.Context, pointID, status string) error
}
