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

var _ repository.CollectionRequestRepository = (*CollectionRequestRepo)(nil)

const requestColumns = `id, user_id, description, address, preferred_date, status, created_at, updated_at`

// CollectionRequestRepo solicitudes de recolección sobre PostgreSQL.
type CollectionRequestRepo struct {
	q Querier
}

// NewCollectionRequestRepository construye el adaptador de solicitudes.
func NewCollectionRequestRepository(q Querier) *CollectionRequestRepo {
	return &CollectionRequestRepo{q: q}
}

// Create persiste una solicitud.
func (r *CollectionRequestRepo) Create(ctx context.Context, req *entity.CollectionRequest) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	query := `INSERT INTO collection_requests (` + requestColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, req.ID, req.UserID, req.Description, req.Address, req.PreferredDate,
		req.Status, req.CreatedAt, req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert collection request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud; (nil, nil) si no existe.
func (r *CollectionRequestRepo) GetByID(ctx context.Context, id string) (*entity.CollectionRequest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	req, err := scanRequest(r.q.QueryRow(ctx, `SELECT `+requestColumns+` FROM collection_requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get collection request: %w", err)
	}
	return req, nil
}

// List solicitudes más recientes primero. userID y status vacíos no filtran.
func (r *CollectionRequestRepo) List(ctx context.Context, userID, status string, limit, offset int) ([]*entity.CollectionRequest, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT ` + requestColumns + ` FROM collection_requests
		WHERE ($1 = '' OR user_id::text = $1) AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, userID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list collection requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.CollectionRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan collection request: %w", err)
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de la solicitud.
func (r *CollectionRequestRepo) UpdateStatus(ctx context.Context, id, status string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `UPDATE collection_requests SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update collection request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanRequest(row pgxScanner) (*entity.CollectionRequest, error) {
	var req entity.CollectionRequest
	if err := row.Scan(&req.ID, &req.UserID, &req.Description, &req.Address, &req.PreferredDate,
		&req.Status, &req.CreatedAt, &req.UpdatedAt); err != nil {
		return nil, err
	}
	return &req, nil
}
