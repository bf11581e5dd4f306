package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ecorecoleccion-api/internal/domain/entity"
)

// CollectionFilter filtros de listado. Campos vacíos no filtran.
type CollectionFilter struct {
	UserID        string // solicitante dueño
	ParticipantID string // dueño o quien la registró
	Status        string
	WasteTypeID   string
	Since         *time.Time
}

// CollectionRepository define el puerto de persistencia para recolecciones (DIP).
type CollectionRepository interface {
	Create(ctx context.Context, c *entity.Collection) error
	GetByID(ctx context.Context, id string) (*entity.CollectionView, error)
	List(ctx context.Context, f CollectionFilter) ([]*entity.CollectionView, error)
	UpdateStatus(ctx context.Context, id, status string) error
	AssignRoute(ctx context.Context, id, routeID string) error
	Stats(ctx context.Context, f CollectionFilter) (*entity.CollectionStats, error)
}
