package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de dato admitidos por un criterio.
const (
	CriterionText    = "texto"
	CriterionNumber  = "numero"
	CriterionBoolean = "booleano"
	CriterionSelect  = "seleccion"
)

// Criterion criterio de puntaje del directorio (ej. "limpio", "peso aproximado").
type Criterion struct {
	ID            string
	Name          string
	Description   string
	DataType      string
	SelectOptions []string // solo para DataType = seleccion
	Required      bool
	DisplayOrder  int
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// WasteTypeCriterion asociación criterio ↔ tipo de residuo con su multiplicador.
type WasteTypeCriterion struct {
	ID              string
	WasteTypeID     string
	CriterionID     string
	DefaultValue    string
	ScoreMultiplier decimal.Decimal
	Required        bool
	Status          string
	Criterion       *Criterion // cargado en lecturas con join
}
