package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ecorecoleccion-api/internal/domain"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain/entity"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain/repository"
)

var _ repository.CollectionRepository = (*CollectionRepo)(nil)

// Cada recolección vale el puntaje base de su tipo de residuo.
const collectionSelect = `
	SELECT c.id, c.name, c.date, c.user_id::text, c.waste_type_id::text, c.route_id::text,
	       c.registered_by::text, c.status, c.created_at, c.updated_at,
	       wt.name, wt.category, wt.base_score,
	       u.user_name, u.first_name, u.last_name,
	       r.name
	FROM collections c
	JOIN waste_types wt ON wt.id = c.waste_type_id
	JOIN users u        ON u.id  = c.user_id
	LEFT JOIN routes r  ON r.id  = c.route_id`

// CollectionRepo recolecciones sobre PostgreSQL.
type CollectionRepo struct {
	q Querier
}

// NewCollectionRepository construye el adaptador de recolecciones.
func NewCollectionRepository(q Querier) *CollectionRepo {
	return &CollectionRepo{q: q}
}

// Create persiste una recolección. Referencias inexistentes → domain.ErrValidation.
func (r *CollectionRepo) Create(ctx context.Context, c *entity.Collection) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO collections (id, name, date, user_id, waste_type_id, route_id, registered_by, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.Name, c.Date, c.UserID, c.WasteTypeID, nullIfEmpty(c.RouteID), nullIfEmpty(c.RegisteredBy),
		c.Status, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: usuario, tipo de residuo o ruta inexistente", domain.ErrValidation)
		}
		return fmt.Errorf("insert collection: %w", err)
	}
	return nil
}

// GetByID obtiene la vista de una recolección; (nil, nil) si no existe.
func (r *CollectionRepo) GetByID(ctx context.Context, id string) (*entity.CollectionView, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	v, err := scanCollectionView(r.q.QueryRow(ctx, collectionSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get collection: %w", err)
	}
	return v, nil
}

// List recolecciones más recientes primero según el filtro.
func (r *CollectionRepo) List(ctx context.Context, f repository.CollectionFilter) ([]*entity.CollectionView, error) {
	cond, args := collectionWhere(f)
	rows, err := r.q.Query(ctx, collectionSelect+cond+` ORDER BY c.date DESC, c.created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()
	var list []*entity.CollectionView
	for rows.Next() {
		v, err := scanCollectionView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de la recolección.
func (r *CollectionRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.exec(ctx, "update collection status",
		`UPDATE collections SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
}

// AssignRoute vincula la recolección a una ruta.
func (r *CollectionRepo) AssignRoute(ctx context.Context, id, routeID string) error {
	return r.exec(ctx, "assign collection route",
		`UPDATE collections SET route_id = $2, updated_at = NOW() WHERE id = $1`, id, routeID)
}

func (r *CollectionRepo) exec(ctx context.Context, op, query, id, arg string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, query, id, arg)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: referencia inexistente", domain.ErrValidation)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Stats agregados por estado, puntos y categorías distintas.
func (r *CollectionRepo) Stats(ctx context.Context, f repository.CollectionFilter) (*entity.CollectionStats, error) {
	cond, args := collectionWhere(f)
	query := `
	SELECT
	    COUNT(*)                                            AS total,
	    COUNT(*) FILTER (WHERE c.status = 'completada')     AS completed,
	    COUNT(*) FILTER (WHERE c.status = 'pendiente')      AS pending,
	    COUNT(*) FILTER (WHERE c.status = 'en_proceso')     AS in_progress,
	    COALESCE(SUM(wt.base_score), 0)                     AS total_points,
	    COUNT(DISTINCT wt.category)                         AS categories
	FROM collections c
	JOIN waste_types wt ON wt.id = c.waste_type_id` + cond
	var s entity.CollectionStats
	if err := r.q.QueryRow(ctx, query, args...).Scan(
		&s.Total, &s.Completed, &s.Pending, &s.InProgress, &s.TotalPoints, &s.Categories,
	); err != nil {
		return nil, fmt.Errorf("collection stats: %w", err)
	}
	return &s, nil
}

func collectionWhere(f repository.CollectionFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	if f.UserID != "" {
		args = append(args, f.UserID)
		where = append(where, fmt.Sprintf("c.user_id::text = $%d", len(args)))
	}
	if f.ParticipantID != "" {
		args = append(args, f.ParticipantID)
		n := len(args)
		where = append(where, fmt.Sprintf("(c.user_id::text = $%d OR c.registered_by::text = $%d)", n, n))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("c.status = $%d", len(args)))
	}
	if f.WasteTypeID != "" {
		args = append(args, f.WasteTypeID)
		where = append(where, fmt.Sprintf("c.waste_type_id::text = $%d", len(args)))
	}
	if f.Since != nil {
		args = append(args, *f.Since)
		where = append(where, fmt.Sprintf("c.date >= $%d", len(args)))
	}
	if len(where) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

func scanCollectionView(row pgxScanner) (*entity.CollectionView, error) {
	var (
		v                     entity.CollectionView
		routeID, registeredBy *string
		firstName, lastName   string
		routeName             *string
	)
	if err := row.Scan(&v.ID, &v.Name, &v.Date, &v.UserID, &v.WasteTypeID, &routeID, &registeredBy,
		&v.Status, &v.CreatedAt, &v.UpdatedAt,
		&v.WasteTypeName, &v.Category, &v.Points,
		&v.UserName, &firstName, &lastName,
		&routeName); err != nil {
		return nil, err
	}
	v.RouteID = derefString(routeID)
	v.RegisteredBy = derefString(registeredBy)
	v.RouteName = derefString(routeName)
	v.UserFullName = strings.TrimSpace(firstName + " " + lastName)
	return &v, nil
}
