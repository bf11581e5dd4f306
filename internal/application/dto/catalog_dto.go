package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// WasteTypeRequest alta o edición de un tipo de residuo.
type WasteTypeRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=100"`
	Description string          `json:"description" validate:"max=1000"`
	BaseScore   decimal.Decimal `json:"base_score"`
	Category    string          `json:"category" validate:"required,min=2,max=50"`
	Status      string          `json:"status" validate:"omitempty,oneof=activo inactivo"`
}

// WasteTypeResponse salida de un tipo de residuo.
type WasteTypeResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	BaseScore   decimal.Decimal `json:"base_score"`
	Category    string          `json:"category"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// WasteTypeListRequest filtros del catálogo.
type WasteTypeListRequest struct {
	Category string `query:"category"`
	Status   string `query:"status"`
	Search   string `query:"search"`
}

// WasteTypeStatsResponse agregados del catálogo.
type WasteTypeStatsResponse struct {
	Total        int             `json:"total"`
	Categories   int             `json:"categories"`
	Active       int             `json:"active"`
	Inactive     int             `json:"inactive"`
	AverageScore decimal.Decimal `json:"average_score"`
	MaxScore     decimal.Decimal `json:"max_score"`
	MinScore     decimal.Decimal `json:"min_score"`
}

// CriterionRequest alta o edición de un criterio.
type CriterionRequest struct {
	Name          string   `json:"name" validate:"required,min=2,max=100"`
	Description   string   `json:"description" validate:"max=1000"`
	DataType      string   `json:"data_type" validate:"required,oneof=texto numero booleano seleccion"`
	SelectOptions []string `json:"select_options"`
	Required      bool     `json:"required"`
	DisplayOrder  int      `json:"display_order" validate:"gte=0"`
	Status        string   `json:"status" validate:"omitempty,oneof=activo inactivo"`
}

// CriterionResponse salida de un criterio.
type CriterionResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	DataType      string    `json:"data_type"`
	SelectOptions []string  `json:"select_options"`
	Required      bool      `json:"required"`
	DisplayOrder  int       `json:"display_order"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CriterionListRequest filtros del directorio.
type CriterionListRequest struct {
	DataType string `query:"data_type"`
	Status   string `query:"status"`
	Search   string `query:"search"`
}

// AssociateCriterionRequest vincula un criterio a un tipo de residuo.
type AssociateCriterionRequest struct {
	WasteTypeID     string           `json:"waste_type_id" validate:"required,uuid"`
	CriterionID     string           `json:"criterion_id" validate:"required,uuid"`
	DefaultValue    string           `json:"default_value" validate:"max=255"`
	ScoreMultiplier *decimal.Decimal `json:"score_multiplier"`
	Required        bool             `json:"required"`
}

// WasteTypeCriterionResponse criterio asociado a un tipo de residuo.
type WasteTypeCriterionResponse struct {
	ID              string            `json:"id"`
	WasteTypeID     string            `json:"waste_type_id"`
	DefaultValue    string            `json:"default_value"`
	ScoreMultiplier decimal.Decimal   `json:"score_multiplier"`
	Required        bool              `json:"required"`
	Status          string            `json:"status"`
	Criterion       CriterionResponse `json:"criterion"`
}
