package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/ecorecoleccion-api/internal/application/dto"
	"github.com/jhoicas/ecorecoleccion-api/internal/application/validation"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain/repository"
	"github.com/jhoicas/ecorecoleccion-api/pkg/authz"
)

// Periodos del reporte personal.
const (
	PeriodLastMonth   = "ultimo-mes"
	PeriodLast3Months = "ultimos-3-meses"
	PeriodLastYear    = "ultimo-ano"
)

// ReportDocument datos que se vuelcan al PDF.
type ReportDocument struct {
	OwnerName   string
	OwnerEmail  string
	PeriodLabel string
	GeneratedAt time.Time
	Entries     []dto.ReportEntry
	Stats       dto.ReportStatsResponse
}

// ReportPDFGenerator genera el PDF del reporte (implementado en infrastructure/pdf).
type ReportPDFGenerator interface {
	GenerateReportPDF(ctx context.Context, doc ReportDocument) ([]byte, error)
}

// ReportUseCase reportes de recolecciones del solicitante autenticado.
type ReportUseCase struct {
	collections repository.CollectionRepository
	users       repository.UserRepository
	pdf         ReportPDFGenerator
	now         func() time.Time
}

// NewReportUseCase construye el caso de uso. pdf puede ser nil si no se exporta.
func NewReportUseCase(collections repository.CollectionRepository, users repository.UserRepository, pdf ReportPDFGenerator) *ReportUseCase {
	return &ReportUseCase{collections: collections, users: users, pdf: pdf, now: time.Now}
}

// Mine recolecciones del principal en el periodo, más recientes primero.
func (uc *ReportUseCase) Mine(ctx context.Context, p *authz.Principal, in dto.ReportRequest) ([]dto.ReportEntry, error) {
	f, err := uc.filter(p, in)
	if err != nil {
		return nil, err
	}
	list, err := uc.collections.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	out := make([]dto.ReportEntry, 0, len(list))
	for _, v := range list {
		out = append(out, dto.ReportEntry{
			ID:        v.ID,
			Date:      v.Date.Format("2006-01-02"),
			Name:      v.Name,
			WasteType: v.WasteTypeName,
			Category:  v.Category,
			Points:    v.Points,
			Status:    v.Status,
			Route:     nonEmpty(v.RouteName, "N/D"),
		})
	}
	return out, nil
}

// MineStats agregados del principal en el periodo.
func (uc *ReportUseCase) MineStats(ctx context.Context, p *authz.Principal, in dto.ReportRequest) (*dto.ReportStatsResponse, error) {
	f, err := uc.filter(p, in)
	if err != nil {
		return nil, err
	}
	s, err := uc.collections.Stats(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("report stats: %w", err)
	}
	return &dto.ReportStatsResponse{
		Total: s.Total, Completed: s.Completed, Pending: s.Pending, InProgress: s.InProgress,
		TotalPoints: s.TotalPoints, Categories: s.Categories,
	}, nil
}

// MinePDF reporte completo del periodo en PDF.
func (uc *ReportUseCase) MinePDF(ctx context.Context, p *authz.Principal, in dto.ReportRequest) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("report pdf: generador no configurado")
	}
	entries, err := uc.Mine(ctx, p, in)
	if err != nil {
		return nil, err
	}
	stats, err := uc.MineStats(ctx, p, in)
	if err != nil {
		return nil, err
	}
	owner, err := uc.users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("report pdf: %w", err)
	}
	if owner == nil {
		return nil, fmt.Errorf("%w: el usuario ya no existe", domain.ErrUnauthenticated)
	}
	now := uc.now()
	return uc.pdf.GenerateReportPDF(ctx, ReportDocument{
		OwnerName:   owner.FullName(),
		OwnerEmail:  owner.Email,
		PeriodLabel: periodLabel(in.Period, now),
		GeneratedAt: now,
		Entries:     entries,
		Stats:       *stats,
	})
}

func (uc *ReportUseCase) filter(p *authz.Principal, in dto.ReportRequest) (repository.CollectionFilter, error) {
	if p == nil {
		return repository.CollectionFilter{}, domain.ErrUnauthenticated
	}
	in.Period = strings.TrimSpace(in.Period)
	if err := validation.Struct(in); err != nil {
		return repository.CollectionFilter{}, err
	}
	f := repository.CollectionFilter{UserID: p.UserID, WasteTypeID: in.WasteTypeID}
	if since, ok := PeriodStart(in.Period, uc.now()); ok {
		f.Since = &since
	}
	return f, nil
}

// PeriodStart fecha desde la que cuenta el periodo (30, 90 o 365 días atrás).
// ok=false para periodo vacío o desconocido: todo el historial.
func PeriodStart(period string, now time.Time) (time.Time, bool) {
	var days int
	switch period {
	case PeriodLastMonth:
		days = 30
	case PeriodLast3Months:
		days = 90
	case PeriodLastYear:
		days = 365
	default:
		return time.Time{}, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, -days), true
}

func periodLabel(period string, now time.Time) string {
	switch period {
	case PeriodLastMonth:
		return "Último mes (" + monthLabel(now) + ")"
	case PeriodLast3Months:
		return "Últimos 3 meses"
	case PeriodLastYear:
		return "Último año"
	}
	return "Todo el historial"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
