package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una recolección.
const (
	CollectionPending    = "pendiente"
	CollectionInProgress = "en_proceso"
	CollectionCompleted  = "completada"
)

// Collection recolección registrada por un recolector para un solicitante.
type Collection struct {
	ID           string
	Name         string
	Date         time.Time
	UserID       string // solicitante dueño de la recolección
	WasteTypeID  string
	RouteID      string
	RegisteredBy string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CollectionView proyección de lectura con nombres resueltos.
type CollectionView struct {
	Collection
	WasteTypeName string
	Category      string
	Points        decimal.Decimal
	UserName      string
	UserFullName  string
	RouteName     string
}

// CollectionStats agregados de recolecciones de un solicitante.
type CollectionStats struct {
	Total       int
	Completed   int
	Pending     int
	InProgress  int
	TotalPoints decimal.Decimal
	Categories  int
}
