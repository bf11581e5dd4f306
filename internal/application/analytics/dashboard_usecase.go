// Package analytics contiene los casos de uso de indicadores: el dashboard global,
// el dashboard personal y los reportes de recolecciones del solicitante.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/ecorecoleccion-api/internal/application/dto"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain/entity"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain/repository"
	"github.com/jhoicas/ecorecoleccion-api/pkg/authz"
)

// DashboardUseCase indicadores del dashboard.
//
// Fuente de datos: DashboardRepository (consultas read-only).
type DashboardUseCase struct {
	repo repository.DashboardRepository
	now  func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, now: time.Now}
}

// Stats indicadores globales. Cuatro consultas en paralelo; la primera que falle
// cancela el resto:
//  1. UserCounts       → usuarios por rol
//  2. CatalogCounts    → catálogo de residuos
//  3. CollectionCounts → recolecciones (total, hoy, por estado)
//  4. RequestCounts    → solicitudes por estado
func (uc *DashboardUseCase) Stats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	var (
		users       *entity.UserCounts
		catalog     *entity.CatalogCounts
		collections *entity.CollectionCounts
		requests    *entity.RequestCounts
	)
	today := uc.now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = uc.repo.UserCounts(gctx)
		return err
	})
	g.Go(func() (err error) {
		catalog, err = uc.repo.CatalogCounts(gctx)
		return err
	})
	g.Go(func() (err error) {
		collections, err = uc.repo.CollectionCounts(gctx, today)
		return err
	})
	g.Go(func() (err error) {
		requests, err = uc.repo.RequestCounts(gctx, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	return &dto.DashboardStatsResponse{
		Users: dto.UserCountsDTO{
			Total: users.Total, Admins: users.Admins, Collectors: users.Collectors, Requesters: users.Requesters,
		},
		WasteTypes: dto.CatalogCountsDTO{
			Total: catalog.Total, Active: catalog.Active, Inactive: catalog.Inactive, Categories: catalog.Categories,
		},
		Collections: dto.CollectionCountsDTO{
			Total: collections.Total, Today: collections.Today, Pending: collections.Pending,
			InProgress: collections.InProgress, Completed: collections.Completed,
		},
		Requests: toRequestCountsDTO(requests),
	}, nil
}

// Personal indicadores del principal: sus recolecciones y sus solicitudes.
func (uc *DashboardUseCase) Personal(ctx context.Context, p *authz.Principal) (*dto.PersonalDashboardResponse, error) {
	if p == nil {
		return nil, domain.ErrUnauthenticated
	}
	var (
		total    int
		requests *entity.RequestCounts
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		total, err = uc.repo.CollectionTotal(gctx, p.UserID)
		return err
	})
	g.Go(func() (err error) {
		requests, err = uc.repo.RequestCounts(gctx, p.UserID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard personal: %w", err)
	}
	return &dto.PersonalDashboardResponse{Collections: total, Requests: toRequestCountsDTO(requests)}, nil
}

func toRequestCountsDTO(c *entity.RequestCounts) dto.RequestCountsDTO {
	return dto.RequestCountsDTO{Total: c.Total, Pending: c.Pending, Approved: c.Approved, Rejected: c.Rejected}
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
