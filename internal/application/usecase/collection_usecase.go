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

// CollectionUseCase registro y seguimiento de recolecciones.
//
// Reglas de propiedad: un no administrador solo ve y modifica recolecciones de las que
// es solicitante o que registró. Un recolector solo puede usar rutas que tiene asignadas,
// y ninguna recolección se asocia a una ruta completada.
type CollectionUseCase struct {
	repo       repository.CollectionRepository
	users      repository.UserRepository
	wasteTypes repository.WasteTypeRepository
	routes     repository.RouteRepository
	now        func() time.Time
}

// NewCollectionUseCase construye el caso de uso.
func NewCollectionUseCase(
	repo repository.CollectionRepository,
	users repository.UserRepository,
	wasteTypes repository.WasteTypeRepository,
	routes repository.RouteRepository,
) *CollectionUseCase {
	return &CollectionUseCase{repo: repo, users: users, wasteTypes: wasteTypes, routes: routes, now: time.Now}
}

// Create registra una recolección para un solicitante. RegisteredBy es el principal.
func (uc *CollectionUseCase) Create(ctx context.Context, p *authz.Principal, in dto.CreateCollectionRequest) (*dto.CollectionResponse, error) {
	if p == nil {
		return nil, domain.ErrUnauthenticated
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	date, _ := time.Parse(dateLayout, in.Date)

	owner, err := uc.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if owner == nil {
		return nil, domain.NewValidationError("el usuario no existe", map[string]string{"user_id": "no existe"})
	}
	wt, err := uc.wasteTypes.GetByID(ctx, in.WasteTypeID)
	if err != nil {
		return nil, fmt.Errorf("get waste type: %w", err)
	}
	if wt == nil {
		return nil, domain.NewValidationError("el tipo de residuo no existe", map[string]string{"waste_type_id": "no existe"})
	}
	if wt.Status != entity.StatusActive {
		return nil, domain.NewValidationError("el tipo de residuo está inactivo", map[string]string{"waste_type_id": "inactivo"})
	}
	if in.RouteID != "" {
		if _, err := uc.usableRoute(ctx, p, in.RouteID); err != nil {
			return nil, err
		}
	}

	status := in.Status
	if status == "" {
		status = entity.CollectionPending
	}
	now := uc.now()
	c := &entity.Collection{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Date:         date,
		UserID:       owner.ID,
		WasteTypeID:  wt.ID,
		RouteID:      in.RouteID,
		RegisteredBy: p.UserID,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, p, c.ID)
}

// GetByID obtiene una recolección aplicando la regla de propiedad. Una recolección ajena
// responde como inexistente para no revelar que existe.
func (uc *CollectionUseCase) GetByID(ctx context.Context, p *authz.Principal, id string) (*dto.CollectionResponse, error) {
	v, err := uc.get(ctx, p, id)
	if err != nil {
		return nil, err
	}
	return toCollectionResponse(v), nil
}

// List recolecciones visibles para el principal.
func (uc *CollectionUseCase) List(ctx context.Context, p *authz.Principal, in dto.ListCollectionsRequest) ([]dto.CollectionResponse, error) {
	if p == nil {
		return nil, domain.ErrUnauthenticated
	}
	f := repository.CollectionFilter{
		Status:      strings.TrimSpace(in.Status),
		WasteTypeID: strings.TrimSpace(in.WasteTypeID),
	}
	if !p.IsAdmin() {
		f.ParticipantID = p.UserID
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	out := make([]dto.CollectionResponse, 0, len(list))
	for _, v := range list {
		out = append(out, *toCollectionResponse(v))
	}
	return out, nil
}

// UpdateStatus cambia el estado de una recolección propia (o cualquiera, si es administrador).
func (uc *CollectionUseCase) UpdateStatus(ctx context.Context, p *authz.Principal, id string, in dto.StatusUpdateRequest) (*dto.CollectionResponse, error) {
	switch in.Status {
	case entity.CollectionPending, entity.CollectionInProgress, entity.CollectionCompleted:
	default:
		return nil, invalidStatus(entity.CollectionPending, entity.CollectionInProgress, entity.CollectionCompleted)
	}
	v, err := uc.get(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateStatus(ctx, id, in.Status); err != nil {
		return nil, err
	}
	v.Status = in.Status
	return toCollectionResponse(v), nil
}

// AssignRoute asocia la recolección a una ruta utilizable por el principal.
func (uc *CollectionUseCase) AssignRoute(ctx context.Context, p *authz.Principal, id string, in dto.AssignRouteRequest) (*dto.CollectionResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	v, err := uc.get(ctx, p, id)
	if err != nil {
		return nil, err
	}
	route, err := uc.usableRoute(ctx, p, in.RouteID)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.AssignRoute(ctx, id, route.ID); err != nil {
		return nil, err
	}
	v.RouteID = route.ID
	v.RouteName = route.Name
	return toCollectionResponse(v), nil
}

func (uc *CollectionUseCase) get(ctx context.Context, p *authz.Principal, id string) (*entity.CollectionView, error) {
	if p == nil {
		return nil, domain.ErrUnauthenticated
	}
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get collection: %w", err)
	}
	if v == nil || !(p.Owns(v.UserID) || v.RegisteredBy == p.UserID) {
		return nil, fmt.Errorf("%w: recolección", domain.ErrNotFound)
	}
	return v, nil
}

// usableRoute la ruta debe existir y no estar completada; un recolector solo usa rutas
// sin asignar o asignadas a él.
func (uc *CollectionUseCase) usableRoute(ctx context.Context, p *authz.Principal, routeID string) (*entity.Route, error) {
	route, err := uc.routes.GetByID(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("get route: %w", err)
	}
	if route == nil {
		return nil, domain.NewValidationError("la ruta no existe", map[string]string{"route_id": "no existe"})
	}
	if route.Status == entity.RouteCompleted {
		return nil, fmt.Errorf("%w: la ruta ya está completada", domain.ErrConflict)
	}
	if !p.IsAdmin() && route.CollectorID != "" && route.CollectorID != p.UserID {
		return nil, domain.ErrForbidden
	}
	return route, nil
}

func toCollectionResponse(v *entity.CollectionView) *dto.CollectionResponse {
	return &dto.CollectionResponse{
		ID:            v.ID,
		Name:          v.Name,
		Date:          v.Date.Format(dateLayout),
		UserID:        v.UserID,
		UserName:      v.UserName,
		UserFullName:  v.UserFullName,
		WasteTypeID:   v.WasteTypeID,
		WasteTypeName: v.WasteTypeName,
		Category:      v.Category,
		Points:        v.Points,
		RouteID:       v.RouteID,
		RouteName:     v.RouteName,
		RegisteredBy:  v.RegisteredBy,
		Status:        v.Status,
		CreatedAt:     v.CreatedAt,
	}
}
