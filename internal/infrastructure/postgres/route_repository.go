package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ecorecoleccion-api/internal/domain"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain/entity"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain/repository"
)

var _ repository.RouteRepository = (*RouteRepo)(nil)

const routeSelect = `
	SELECT r.id, r.name, r.description, r.collector_id::text, r.assigned_at, r.status,
	       u.user_name, u.first_name, u.last_name
	FROM routes r
	LEFT JOIN users u ON u.id = r.collector_id`

// RouteRepo rutas de recolección y sus puntos. Para crear una ruta con sus puntos de forma
// atómica debe construirse sobre una tx (ver TxRunner.RunRoutes).
type RouteRepo struct {
	q Querier
}

// NewRouteRepository construye el adaptador de rutas. Pasar pool o tx (Querier).
func NewRouteRepository(q Querier) *RouteRepo {
	return &RouteRepo{q: q}
}

// Create inserta la ruta y luego cada punto en orden.
func (r *RouteRepo) Create(ctx context.Context, route *entity.Route) error {
	if route.ID == "" {
		route.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO routes (id, name, description, collector_id, assigned_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		route.ID, route.Name, route.Description, nullIfEmpty(route.CollectorID), route.AssignedAt, route.Status)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: recolector inexistente", domain.ErrValidation)
		}
		return fmt.Errorf("insert route: %w", err)
	}
	for i := range route.Points {
		p := &route.Points[i]
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		p.RouteID = route.ID
		_, err := r.q.Exec(ctx, `
			INSERT INTO route_points (id, route_id, address, lat, lng, status, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			p.ID, p.RouteID, p.Address, p.Lat, p.Lng, p.Status, p.Order)
		if err != nil {
			return fmt.Errorf("insert route point: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la ruta con su recolector y sus puntos; (nil, nil) si no existe.
func (r *RouteRepo) GetByID(ctx context.Context, id string) (*entity.Route, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	route, err := scanRoute(r.q.QueryRow(ctx, routeSelect+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get route: %w", err)
	}
	points, err := r.listPoints(ctx, route.ID)
	if err != nil {
		return nil, err
	}
	route.Points = points
	return route, nil
}

// List rutas más recientes primero con sus puntos. search filtra por nombre.
func (r *RouteRepo) List(ctx context.Context, search string) ([]*entity.Route, error) {
	query := routeSelect
	var args []any
	if search != "" {
		query += ` WHERE r.name ILIKE $1`
		args = append(args, likePattern(search))
	}
	query += ` ORDER BY r.assigned_at DESC`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	var list []*entity.Route
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan route: %w", err)
		}
		list = append(list, route)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	for _, route := range list {
		points, err := r.listPoints(ctx, route.ID)
		if err != nil {
			return nil, err
		}
		route.Points = points
	}
	return list, nil
}

// UpdateStatus cambia el estado de la ruta.
func (r *RouteRepo) UpdateStatus(ctx context.Context, id, status string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `UPDATE routes SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update route status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetPoint obtiene un punto de ruta; (nil, nil) si no existe.
func (r *RouteRepo) GetPoint(ctx context.Context, pointID string) (*entity.RoutePoint, error) {
	if _, err := uuid.Parse(pointID); err != nil {
		return nil, nil
	}
	var p entity.RoutePoint
	err := r.q.QueryRow(ctx, `
		SELECT id, route_id, address, lat, lng, status, sort_order FROM route_points WHERE id = $1`, pointID).
		Scan(&p.ID, &p.RouteID, &p.Address, &p.Lat, &p.Lng, &p.Status, &p.Order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get route point: %w", err)
	}
	return &p, nil
}

// UpdatePointStatus cambia el estado de un punto.
func (r *RouteRepo) UpdatePointStatus(ctx context.Context, pointID, status string) error {
	if _, err := uuid.Parse(pointID); err != nil {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `UPDATE route_points SET status = $2 WHERE id = $1`, pointID, status)
	if err != nil {
		return fmt.Errorf("update route point status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RouteRepo) listPoints(ctx context.Context, routeID string) ([]entity.RoutePoint, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, route_id, address, lat, lng, status, sort_order
		FROM route_points WHERE route_id = $1 ORDER BY sort_order`, routeID)
	if err != nil {
		return nil, fmt.Errorf("list route points: %w", err)
	}
	defer rows.Close()
	var points []entity.RoutePoint
	for rows.Next() {
		var p entity.RoutePoint
		if err := rows.Scan(&p.ID, &p.RouteID, &p.Address, &p.Lat, &p.Lng, &p.Status, &p.Order); err != nil {
			return nil, fmt.Errorf("scan route point: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func scanRoute(row pgxScanner) (*entity.Route, error) {
	var (
		route                         entity.Route
		collectorID                   *string
		userName, firstName, lastName *string
	)
	if err := row.Scan(&route.ID, &route.Name, &route.Description, &collectorID, &route.AssignedAt,
		&route.Status, &userName, &firstName, &lastName); err != nil {
		return nil, err
	}
	route.CollectorID = derefString(collectorID)
	if route.CollectorID != "" {
		route.Collector = &entity.User{
			ID:        route.CollectorID,
			UserName:  derefString(userName),
			FirstName: derefString(firstName),
			LastName:  derefString(lastName),
		}
	}
	return &route, nil
}
