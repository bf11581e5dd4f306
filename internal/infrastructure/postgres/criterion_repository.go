package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ecorecoleccion-api/internal/domain"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain/entity"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain/repository"
)

var _ repository.CriterionRepository = (*CriterionRepo)(nil)

const criterionColumns = `id, name, description, data_type, select_options, required, display_order, status, created_at, updated_at`

// CriterionRepo directorio de criterios y su asociación con tipos de residuo.
type CriterionRepo struct {
	q Querier
}

// NewCriterionRepository construye el adaptador de criterios.
func NewCriterionRepository(q Querier) *CriterionRepo {
	return &CriterionRepo{q: q}
}

// Create persiste un criterio.
func (r *CriterionRepo) Create(ctx context.Context, c *entity.Criterion) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	opts, err := json.Marshal(nonNilOptions(c.SelectOptions))
	if err != nil {
		return fmt.Errorf("encode select options: %w", err)
	}
	query := `INSERT INTO criteria (` + criterionColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.q.Exec(ctx, query, c.ID, c.Name, c.Description, c.DataType, opts, c.Required,
		c.DisplayOrder, c.Status, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe un criterio con ese nombre", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert criterion: %w", err)
	}
	return nil
}

// GetByID obtiene un criterio; (nil, nil) si no existe.
func (r *CriterionRepo) GetByID(ctx context.Context, id string) (*entity.Criterion, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	c, err := scanCriterion(r.q.QueryRow(ctx, `SELECT `+criterionColumns+` FROM criteria WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get criterion: %w", err)
	}
	return c, nil
}

// Update reescribe los campos editables.
func (r *CriterionRepo) Update(ctx context.Context, c *entity.Criterion) error {
	opts, err := json.Marshal(nonNilOptions(c.SelectOptions))
	if err != nil {
		return fmt.Errorf("encode select options: %w", err)
	}
	query := `
		UPDATE criteria SET name = $2, description = $3, data_type = $4, select_options = $5,
		       required = $6, display_order = $7, status = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Description, c.DataType, opts, c.Required,
		c.DisplayOrder, c.Status, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe un criterio con ese nombre", domain.ErrDuplicate)
		}
		return fmt.Errorf("update criterion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el criterio y, en cascada, sus asociaciones.
func (r *CriterionRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM criteria WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete criterion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista criterios ordenados por display_order y nombre.
func (r *CriterionRepo) List(ctx context.Context, f repository.CriterionFilter) ([]*entity.Criterion, error) {
	var (
		where []string
		args  []any
	)
	if f.DataType != "" {
		args = append(args, f.DataType)
		where = append(where, fmt.Sprintf("data_type = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, likePattern(f.Search))
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	query := `SELECT ` + criterionColumns + ` FROM criteria`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY display_order, name"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list criteria: %w", err)
	}
	defer rows.Close()
	var list []*entity.Criterion
	for rows.Next() {
		c, err := scanCriterion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan criterion: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Associate vincula un criterio a un tipo de residuo. Vínculo repetido → domain.ErrDuplicate;
// tipo o criterio inexistente → domain.ErrNotFound.
func (r *CriterionRepo) Associate(ctx context.Context, a *entity.WasteTypeCriterion) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `
		INSERT INTO waste_type_criteria (id, waste_type_id, criterion_id, default_value, score_multiplier, required, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, a.ID, a.WasteTypeID, a.CriterionID, a.DefaultValue, a.ScoreMultiplier, a.Required, a.Status)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return fmt.Errorf("%w: el criterio ya está asociado a este tipo de residuo", domain.ErrDuplicate)
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		}
		return fmt.Errorf("associate criterion: %w", err)
	}
	return nil
}

// Dissociate elimina el vínculo; domain.ErrNotFound si no existía.
func (r *CriterionRepo) Dissociate(ctx context.Context, wasteTypeID, criterionID string) error {
	if _, err := uuid.Parse(wasteTypeID); err != nil {
		return domain.ErrNotFound
	}
	if _, err := uuid.Parse(criterionID); err != nil {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx,
		`DELETE FROM waste_type_criteria WHERE waste_type_id = $1 AND criterion_id = $2`, wasteTypeID, criterionID)
	if err != nil {
		return fmt.Errorf("dissociate criterion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByWasteType criterios asociados a un tipo de residuo con el criterio cargado.
func (r *CriterionRepo) ListByWasteType(ctx context.Context, wasteTypeID string) ([]*entity.WasteTypeCriterion, error) {
	const query = `
	SELECT wtc.id, wtc.waste_type_id, wtc.criterion_id, wtc.default_value, wtc.score_multiplier,
	       wtc.required, wtc.status,
	       c.id, c.name, c.description, c.data_type, c.select_options, c.required, c.display_order,
	       c.status, c.created_at, c.updated_at
	FROM waste_type_criteria wtc
	JOIN criteria c ON c.id = wtc.criterion_id
	WHERE wtc.waste_type_id = $1
	ORDER BY c.display_order, c.name`
	rows, err := r.q.Query(ctx, query, wasteTypeID)
	if err != nil {
		return nil, fmt.Errorf("list waste type criteria: %w", err)
	}
	defer rows.Close()
	var list []*entity.WasteTypeCriterion
	for rows.Next() {
		var (
			a    entity.WasteTypeCriterion
			c    entity.Criterion
			opts []byte
		)
		if err := rows.Scan(&a.ID, &a.WasteTypeID, &a.CriterionID, &a.DefaultValue, &a.ScoreMultiplier,
			&a.Required, &a.Status,
			&c.ID, &c.Name, &c.Description, &c.DataType, &opts, &c.Required, &c.DisplayOrder,
			&c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan waste type criterion: %w", err)
		}
		if err := decodeOptions(opts, &c); err != nil {
			return nil, err
		}
		a.Criterion = &c
		list = append(list, &a)
	}
	return list, rows.Err()
}

func scanCriterion(row pgxScanner) (*entity.Criterion, error) {
	var (
		c    entity.Criterion
		opts []byte
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.DataType, &opts, &c.Required,
		&c.DisplayOrder, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if err := decodeOptions(opts, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func decodeOptions(raw []byte, c *entity.Criterion) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, &c.SelectOptions); err != nil {
		return fmt.Errorf("decode select options: %w", err)
	}
	return nil
}

func nonNilOptions(opts []string) []string {
	if opts == nil {
		return []string{}
	}
	return opts
}
