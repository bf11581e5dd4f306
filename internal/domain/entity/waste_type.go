package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de catálogo compartidos por tipos de residuo y criterios.
const (
	StatusActive   = "activo"
	StatusInactive = "inactivo"
)

// WasteType tipo de residuo del catálogo; BaseScore son los puntos que recibe
// el solicitante por cada recolección de este tipo.
type WasteType struct {
	ID          string
	Name        string
	Description string
	BaseScore   decimal.Decimal
	Category    string
	Status      string // activo, inactivo
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WasteTypeStats agregados del catálogo.
type WasteTypeStats struct {
	Total        int
	Categories   int
	Active       int
	Inactive     int
	AverageScore decimal.Decimal
	MaxScore     decimal.Decimal
	MinScore     decimal.Decimal
}
