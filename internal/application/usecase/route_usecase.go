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

// RouteTxRunner ejecuta fn en una transacción con repos atados a ella.
type RouteTxRunner interface {
	RunRoutes(ctx context.Context, fn func(routes repository.RouteRepository, users repository.UserRepository) error) error
}

// RouteUseCase rutas de recolección y sus puntos.
type RouteUseCase struct {
	repo repository.RouteRepository
	tx   RouteTxRunner
	now  func() time.Time
}

// NewRouteUseCase construye el caso de uso.
func NewRouteUseCase(repo repository.RouteRepository, tx RouteTxRunner) *RouteUseCase {
	return &RouteUseCase{repo: repo, tx: tx, now: time.Now}
}

// Create crea la ruta con sus puntos en una sola transacción. Si se indica recolector,
// debe existir y tener rol recolector (o administrador).
func (uc *RouteUseCase) Create(ctx context.Context, in dto.CreateRouteRequest) (*dto.RouteResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	route := &entity.Route{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CollectorID: in.CollectorID,
		AssignedAt:  uc.now(),
		Status:      entity.RouteAssigned,
	}
	for i, p := range in.Points {
		route.Points = append(route.Points, entity.RoutePoint{
			ID:      uuid.New().String(),
			RouteID: route.ID,
			Address: strings.TrimSpace(p.Address),
			Lat:     p.Lat,
			Lng:     p.Lng,
			Status:  entity.PointPending,
			Order:   i + 1,
		})
	}

	err := uc.tx.RunRoutes(ctx, func(routes repository.RouteRepository, users repository.UserRepository) error {
		if route.CollectorID != "" {
			collector, err := users.GetByID(ctx, route.CollectorID)
			if err != nil {
				return fmt.Errorf("get collector: %w", err)
			}
			if collector == nil {
				return domain.NewValidationError("el recolector no existe",
					map[string]string{"collector_id": "no existe"})
			}
			if collector.Role != authz.RoleCollector && collector.Role != authz.RoleAdmin {
				return domain.NewValidationError("el usuario asignado no es recolector",
					map[string]string{"collector_id": "debe tener rol recolector"})
			}
			route.Collector = collector
		}
		return routes.Create(ctx, route)
	})
	if err != nil {
		return nil, err
	}
	return toRouteResponse(route), nil
}

// GetByID obtiene una ruta con sus puntos.
func (uc *RouteUseCase) GetByID(ctx context.Context, id string) (*dto.RouteResponse, error) {
	route, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRouteResponse(route), nil
}

// List rutas, opcionalmente filtradas por nombre.
func (uc *RouteUseCase) List(ctx context.Context, search string) ([]dto.RouteResponse, error) {
	list, err := uc.repo.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	out := make([]dto.RouteResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toRouteResponse(r))
	}
	return out, nil
}

// UpdateStatus cambia el estado de la ruta. Solo el recolector asignado o un administrador.
func (uc *RouteUseCase) UpdateStatus(ctx context.Context, p *authz.Principal, id string, in dto.StatusUpdateRequest) (*dto.RouteResponse, error) {
	switch in.Status {
	case entity.RouteAssigned, entity.RouteInProgress, entity.RouteCompleted:
	default:
		return nil, invalidStatus(entity.RouteAssigned, entity.RouteInProgress, entity.RouteCompleted)
	}
	route, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canOperateRoute(p, route) {
		return nil, domain.ErrForbidden
	}
	if err := uc.repo.UpdateStatus(ctx, id, in.Status); err != nil {
		return nil, err
	}
	route.Status = in.Status
	return toRouteResponse(route), nil
}

// UpdatePointStatus cambia el estado de un punto. Misma regla de propiedad que la ruta.
func (uc *RouteUseCase) UpdatePointStatus(ctx context.Context, p *authz.Principal, pointID string, in dto.StatusUpdateRequest) (*dto.RoutePointResponse, error) {
	switch in.Status {
	case entity.PointPending, entity.PointInProgress, entity.PointCompleted:
	default:
		return nil, invalidStatus(entity.PointPending, entity.PointInProgress, entity.PointCompleted)
	}
	point, err := uc.repo.GetPoint(ctx, pointID)
	if err != nil {
		return nil, fmt.Errorf("get route point: %w", err)
	}
	if point == nil {
		return nil, fmt.Errorf("%w: punto de ruta", domain.ErrNotFound)
	}
	route, err := uc.get(ctx, point.RouteID)
	if err != nil {
		return nil, err
	}
	if !canOperateRoute(p, route) {
		return nil, domain.ErrForbidden
	}
	if err := uc.repo.UpdatePointStatus(ctx, pointID, in.Status); err != nil {
		return nil, err
	}
	point.Status = in.Status
	res := toRoutePointResponse(*point)
	return &res, nil
}

func (uc *RouteUseCase) get(ctx context.Context, id string) (*entity.Route, error) {
	route, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get route: %w", err)
	}
	if route == nil {
		return nil, fmt.Errorf("%w: ruta", domain.ErrNotFound)
	}
	return route, nil
}

// canOperateRoute administrador o recolector asignado. Una ruta sin asignar solo la opera
// un administrador.
func canOperateRoute(p *authz.Principal, route *entity.Route) bool {
	return p.IsAdmin() || (p != nil && route.AssignedTo(p.UserID))
}

func toRouteResponse(r *entity.Route) *dto.RouteResponse {
	res := &dto.RouteResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CollectorID: r.CollectorID,
		AssignedAt:  r.AssignedAt,
		Status:      r.Status,
		Points:      make([]dto.RoutePointResponse, 0, len(r.Points)),
	}
	if r.Collector != nil {
		res.CollectorName = r.Collector.FullName()
	}
	for _, p := range r.Points {
		res.Points = append(res.Points, toRoutePointResponse(p))
	}
	return res
}

func toRoutePointResponse(p entity.RoutePoint) dto.RoutePointResponse {
	return dto.RoutePointResponse{
		ID: p.ID, Address: p.Address, Lat: p.Lat, Lng: p.Lng, Status: p.Status, Order: p.Order,
	}
}
