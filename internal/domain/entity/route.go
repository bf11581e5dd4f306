package entity

import "time"

// Estados de una ruta.
const (
	RouteAssigned   = "asignada"
	RouteInProgress = "en_progreso"
	RouteCompleted  = "completada"
)

// Estados de un punto de ruta.
const (
	PointPending    = "pendiente"
	PointInProgress = "en_proceso"
	PointCompleted  = "completado"
)

// Route ruta de recolección, opcionalmente asignada a un recolector.
type Route struct {
	ID          string
	Name        string
	Description string
	CollectorID string // vacío = sin asignar
	AssignedAt  time.Time
	Status      string
	Points      []RoutePoint
	Collector   *User // cargado en lecturas
}

// RoutePoint parada de la ruta.
type RoutePoint struct {
	ID      string
	RouteID string
	Address string
	Lat     *float64
	Lng     *float64
	Status  string
	Order   int
}

// AssignedTo informa si la ruta tiene como recolector a userID.
func (r *Route) AssignedTo(userID string) bool {
	return r.CollectorID != "" && r.CollectorID == userID
}
