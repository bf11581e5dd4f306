package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ecorecoleccion-api/internal/domain/entity"
)

// DashboardRepository consultas read-only de agregados para el dashboard.
type DashboardRepository interface {
	UserCounts(ctx context.Context) (*entity.UserCounts, error)
	CatalogCounts(ctx context.Context) (*entity.CatalogCounts, error)
	CollectionCounts(ctx context.Context, today time.Time) (*entity.CollectionCounts, error)
	RequestCounts(ctx context.Context, userID string) (*entity.RequestCounts, error)
	CollectionTotal(ctx context.Context, userID string) (int, error)
}
