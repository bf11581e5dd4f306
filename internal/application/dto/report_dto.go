package dto

import "github.com/shopspring/decimal"

// ReportRequest filtros del reporte personal.
// Period: ultimo-mes, ultimos-3-meses, ultimo-ano (vacío = todo el historial).
type ReportRequest struct {
	Period      string `query:"period" validate:"omitempty,oneof=ultimo-mes ultimos-3-meses ultimo-ano"`
	WasteTypeID string `query:"waste_type_id" validate:"omitempty,uuid"`
}

// ReportEntry una recolección del reporte.
type ReportEntry struct {
	ID        string          `json:"id"`
	Date      string          `json:"date"`
	Name      string          `json:"name"`
	WasteType string          `json:"waste_type"`
	Category  string          `json:"category"`
	Points    decimal.Decimal `json:"points"`
	Status    string          `json:"status"`
	Route     string          `json:"route"`
}

// ReportStatsResponse agregados del reporte personal.
type ReportStatsResponse struct {
	Total       int             `json:"total"`
	Completed   int             `json:"completed"`
	Pending     int             `json:"pending"`
	InProgress  int             `json:"in_progress"`
	TotalPoints decimal.Decimal `json:"total_points"`
	Categories  int             `json:"categories"`
}
