package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ecorecoleccion-api/internal/domain/entity"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para los indicadores del dashboard.
// Usa el pool (no una tx) para que las consultas puedan correr en paralelo.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository construye el adaptador del dashboard.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// UserCounts totales de usuarios por rol.
func (r *DashboardRepo) UserCounts(ctx context.Context) (*entity.UserCounts, error) {
	const query = `
	SELECT COUNT(*),
	       COUNT(*) FILTER (WHERE role = 'admin'),
	       COUNT(*) FILTER (WHERE role = 'recolector'),
	       COUNT(*) FILTER (WHERE role = 'usuario')
	FROM users`
	var c entity.UserCounts
	if err := r.pool.QueryRow(ctx, query).Scan(&c.Total, &c.Admins, &c.Collectors, &c.Requesters); err != nil {
		return nil, fmt.Errorf("dashboard.UserCounts: %w", err)
	}
	return &c, nil
}

// CatalogCounts totales del catálogo de residuos.
func (r *DashboardRepo) CatalogCounts(ctx context.Context) (*entity.CatalogCounts, error) {
	const query = `
	SELECT COUNT(*),
	       COUNT(*) FILTER (WHERE status = 'activo'),
	       COUNT(*) FILTER (WHERE status = 'inactivo'),
	       COUNT(DISTINCT category)
	FROM waste_types`
	var c entity.CatalogCounts
	if err := r.pool.QueryRow(ctx, query).Scan(&c.Total, &c.Active, &c.Inactive, &c.Categories); err != nil {
		return nil, fmt.Errorf("dashboard.CatalogCounts: %w", err)
	}
	return &c, nil
}

// CollectionCounts totales globales de recolecciones; Today cuenta las de la fecha dada.
func (r *DashboardRepo) CollectionCounts(ctx context.Context, today time.Time) (*entity.CollectionCounts, error) {
	const query = `
	SELECT COUNT(*),
	       COUNT(*) FILTER (WHERE date = $1::date),
	       COUNT(*) FILTER (WHERE status = 'pendiente'),
	       COUNT(*) FILTER (WHERE status = 'en_proceso'),
	       COUNT(*) FILTER (WHERE status = 'completada')
	FROM collections`
	var c entity.CollectionCounts
	if err := r.pool.QueryRow(ctx, query, today).Scan(&c.Total, &c.Today, &c.Pending, &c.InProgress, &c.Completed); err != nil {
		return nil, fmt.Errorf("dashboard.CollectionCounts: %w", err)
	}
	return &c, nil
}

// RequestCounts totales de solicitudes; userID vacío = todas.
func (r *DashboardRepo) RequestCounts(ctx context.Context, userID string) (*entity.RequestCounts, error) {
	const query = `
	SELECT COUNT(*),
	       COUNT(*) FILTER (WHERE status = 'pendiente'),
	       COUNT(*) FILTER (WHERE status = 'aprobada'),
	       COUNT(*) FILTER (WHERE status = 'rechazada')
	FROM collection_requests
	WHERE ($1 = '' OR user_id::text = $1)`
	var c entity.RequestCounts
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&c.Total, &c.Pending, &c.Approved, &c.Rejected); err != nil {
		return nil, fmt.Errorf("dashboard.RequestCounts: %w", err)
	}
	return &c, nil
}

// CollectionTotal recolecciones del usuario (o todas con userID vacío).
func (r *DashboardRepo) CollectionTotal(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM collections WHERE ($1 = '' OR user_id::text = $1)`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("dashboard.CollectionTotal: %w", err)
	}
	return n, nil
}
