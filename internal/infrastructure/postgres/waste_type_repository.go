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

var _ repository.WasteTypeRepository = (*WasteTypeRepo)(nil)

const wasteTypeColumns = `id, name, description, base_score, category, status, created_at, updated_at`

// WasteTypeRepo catálogo de tipos de residuo sobre PostgreSQL.
type WasteTypeRepo struct {
	q Querier
}

// NewWasteTypeRepository construye el adaptador del catálogo.
func NewWasteTypeRepository(q Querier) *WasteTypeRepo {
	return &WasteTypeRepo{q: q}
}

// Create persiste un tipo de residuo. Nombre duplicado → domain.ErrDuplicate.
func (r *WasteTypeRepo) Create(ctx context.Context, wt *entity.WasteType) error {
	if wt.ID == "" {
		wt.ID = uuid.New().String()
	}
	query := `INSERT INTO waste_types (` + wasteTypeColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		wt.ID, wt.Name, wt.Description, wt.BaseScore, wt.Category, wt.Status, wt.CreatedAt, wt.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe un tipo de residuo con ese nombre", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert waste type: %w", err)
	}
	return nil
}

// GetByID obtiene un tipo de residuo; (nil, nil) si no existe.
func (r *WasteTypeRepo) GetByID(ctx context.Context, id string) (*entity.WasteType, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	wt, err := scanWasteType(r.q.QueryRow(ctx, `SELECT `+wasteTypeColumns+` FROM waste_types WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get waste type: %w", err)
	}
	return wt, nil
}

// Update reescribe los campos editables.
func (r *WasteTypeRepo) Update(ctx context.Context, wt *entity.WasteType) error {
	query := `
		UPDATE waste_types SET name = $2, description = $3, base_score = $4, category = $5,
		       status = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, wt.ID, wt.Name, wt.Description, wt.BaseScore, wt.Category, wt.Status, wt.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe un tipo de residuo con ese nombre", domain.ErrDuplicate)
		}
		return fmt.Errorf("update waste type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un tipo de residuo. Si hay recolecciones que lo referencian → domain.ErrConflict.
func (r *WasteTypeRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM waste_types WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el tipo de residuo tiene recolecciones registradas", domain.ErrConflict)
		}
		return fmt.Errorf("delete waste type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista el catálogo con filtros opcionales, ordenado por categoría y nombre.
func (r *WasteTypeRepo) List(ctx context.Context, f repository.WasteTypeFilter) ([]*entity.WasteType, error) {
	var (
		where []string
		args  []any
	)
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, likePattern(f.Search))
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	query := `SELECT ` + wasteTypeColumns + ` FROM waste_types`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY category, name"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list waste types: %w", err)
	}
	defer rows.Close()
	var list []*entity.WasteType
	for rows.Next() {
		wt, err := scanWasteType(rows)
		if err != nil {
			return nil, fmt.Errorf("scan waste type: %w", err)
		}
		list = append(list, wt)
	}
	return list, rows.Err()
}

// Categories devuelve las categorías distintas del catálogo.
func (r *WasteTypeRepo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT category FROM waste_types ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Stats agregados del catálogo. COALESCE devuelve cero con el catálogo vacío.
func (r *WasteTypeRepo) Stats(ctx context.Context) (*entity.WasteTypeStats, error) {
	const query = `
	SELECT
	    COUNT(*)                                           AS total,
	    COUNT(DISTINCT category)                           AS categories,
	    COUNT(*) FILTER (WHERE status = 'activo')          AS active,
	    COUNT(*) FILTER (WHERE status = 'inactivo')        AS inactive,
	    COALESCE(ROUND(AVG(base_score), 2), 0)             AS avg_score,
	    COALESCE(MAX(base_score), 0)                       AS max_score,
	    COALESCE(MIN(base_score), 0)                       AS min_score
	FROM waste_types`
	var s entity.WasteTypeStats
	if err := r.q.QueryRow(ctx, query).Scan(
		&s.Total, &s.Categories, &s.Active, &s.Inactive, &s.AverageScore, &s.MaxScore, &s.MinScore,
	); err != nil {
		return nil, fmt.Errorf("waste type stats: %w", err)
	}
	return &s, nil
}

// CountCriteria número de criterios asociados al tipo de residuo.
func (r *WasteTypeRepo) CountCriteria(ctx context.Context, wasteTypeID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM waste_type_criteria WHERE waste_type_id = $1`, wasteTypeID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count waste type criteria: %w", err)
	}
	return n, nil
}

func scanWasteType(row pgxScanner) (*entity.WasteType, error) {
	var wt entity.WasteType
	if err := row.Scan(&wt.ID, &wt.Name, &wt.Description, &wt.BaseScore, &wt.Category, &wt.Status,
		&wt.CreatedAt, &wt.UpdatedAt); err != nil {
		return nil, err
	}
	return &wt, nil
}
