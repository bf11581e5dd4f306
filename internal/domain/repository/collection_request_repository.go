package repository

import (
	"context"

	"github.com/jhoicas/ecorecoleccion-api/internal/domain/entity"
)

// CollectionRequestRepository define el puerto de persistencia para solicitudes (DIP).
type CollectionRequestRepository interface {
	Create(ctx context.Context, r *entity.CollectionRequest) error
	GetByID(ctx context.Context, id string) (*entity.CollectionRequest, error)
	// List userID vacío = todas (vista de administrador).
	List(ctx context.Context, userID, status string, limit, offset int) ([]*entity.CollectionRequest, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
