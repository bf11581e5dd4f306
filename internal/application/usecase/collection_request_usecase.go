package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ecorecoleccion-api/internal/application/dto"
	"github.com/jhoicas/ecorecoleccion-api/internal/application/validation"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain/entity"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain/repository"
	"github.com/jhoicas/ecorecoleccion-api/pkg/authz"
)

const dateLayout = "2006-01-02"

// CollectionRequestUseCase solicitudes de recogida de los solicitantes.
type CollectionRequestUseCase struct {
	repo repository.CollectionRequestRepository
	now  func() time.Time
}

// NewCollectionRequestUseCase construye el caso de uso.
func NewCollectionRequestUseCase(repo repository.CollectionRequestRepository) *CollectionRequestUseCase {
	return &CollectionRequestUseCase{repo: repo, now: time.Now}
}

// Create registra una solicitud a nombre del principal (nunca de otro usuario).
func (uc *CollectionRequestUseCase) Create(ctx context.Context, p *authz.Principal, in dto.CreateCollectionRequestRequest) (*dto.CollectionRequestResponse, error) {
	if p == nil {
		return nil, domain.ErrUnauthenticated
	}
	in.Description = strings.TrimSpace(in.Description)
	in.Address = strings.TrimSpace(in.Address)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	now := uc.now()
	req := &entity.CollectionRequest{
		ID:          uuid.New().String(),
		UserID:      p.UserID,
		Description: in.Description,
		Address:     in.Address,
		Status:      entity.RequestPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.PreferredDate != "" {
		d, _ := time.Parse(dateLayout, in.PreferredDate)
		if d.Before(truncateDay(now)) {
			return nil, domain.NewValidationError("la fecha preferida no puede estar en el pasado",
				map[string]string{"preferred_date": "debe ser hoy o posterior"})
		}
		req.PreferredDate = &d
	}
	if err := uc.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	return toCollectionRequestResponse(req), nil
}

// List solicitudes del principal; el administrador ve todas.
func (uc *CollectionRequestUseCase) List(ctx context.Context, p *authz.Principal, in dto.ListCollectionRequestsRequest) ([]dto.CollectionRequestResponse, error) {
	if p == nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	in.DefaultPage()
	userID := p.UserID
	if p.IsAdmin() {
		userID = ""
	}
	list, err := uc.repo.List(ctx, userID, strings.TrimSpace(in.Status), in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("list collection requests: %w", err)
	}
	out := make([]dto.CollectionRequestResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toCollectionRequestResponse(r))
	}
	return out, nil
}

// UpdateStatus aprueba, rechaza o devuelve a pendiente una solicitud.
func (uc *CollectionRequestUseCase) UpdateStatus(ctx context.Context, id string, in dto.StatusUpdateRequest) (*dto.CollectionRequestResponse, error) {
	switch in.Status {
	case entity.RequestPending, entity.RequestApproved, entity.RequestRejected:
	default:
		return nil, invalidStatus(entity.RequestPending, entity.RequestApproved, entity.RequestRejected)
	}
	if err := uc.repo.UpdateStatus(ctx, id, in.Status); err != nil {
		return nil, err
	}
	req, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get collection request: %w", err)
	}
	if req == nil {
		return nil, fmt.Errorf("%w: solicitud", domain.ErrNotFound)
	}
	return toCollectionRequestResponse(req), nil
}

func toCollectionRequestResponse(r *entity.CollectionRequest) *dto.CollectionRequestResponse {
	res := &dto.CollectionRequestResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		Description: r.Description,
		Address:     r.Address,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
	}
	if r.PreferredDate != nil {
		res.PreferredDate = r.PreferredDate.Format(dateLayout)
	}
	return res
}

func invalidStatus(valid ...string) error {
	return domain.NewValidationError("estado inválido",
		map[string]string{"status": "debe ser uno de: " + strings.Join(valid, ", ")})
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
