package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCollectionRequestRequest nueva solicitud de recogida.
type CreateCollectionRequestRequest struct {
	Description   string `json:"description" validate:"required,min=5,max=1000"`
	Address       string `json:"address" validate:"required,min=5,max=255"`
	PreferredDate string `json:"preferred_date" validate:"omitempty,datetime=2006-01-02"`
}

// CollectionRequestResponse salida de una solicitud.
type CollectionRequestResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Description   string    `json:"description"`
	Address       string    `json:"address"`
	PreferredDate string    `json:"preferred_date,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListCollectionRequestsRequest filtros del listado de solicitudes.
type ListCollectionRequestsRequest struct {
	PageRequest
	Status string `query:"status"`
}

// RoutePointRequest parada nueva.
type RoutePointRequest struct {
	Address string   `json:"address" validate:"required,min=3,max=255"`
	Lat     *float64 `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lng     *float64 `json:"lng" validate:"omitempty,gte=-180,lte=180"`
}

// CreateRouteRequest nueva ruta con sus puntos.
type CreateRouteRequest struct {
	Name        string              `json:"name" validate:"required,min=2,max=100"`
	Description string              `json:"description" validate:"max=1000"`
	CollectorID string              `json:"collector_id" validate:"omitempty,uuid"`
	Points      []RoutePointRequest `json:"points" validate:"dive"`
}

// RoutePointResponse parada de la ruta.
type RoutePointResponse struct {
	ID      string   `json:"id"`
	Address string   `json:"address"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
	Status  string   `json:"status"`
	Order   int      `json:"order"`
}

// RouteResponse salida de una ruta.
type RouteResponse struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	CollectorID   string               `json:"collector_id,omitempty"`
	CollectorName string               `json:"collector_name,omitempty"`
	AssignedAt    time.Time            `json:"assigned_at"`
	Status        string               `json:"status"`
	Points        []RoutePointResponse `json:"points"`
}

// CreateCollectionRequest registro de una recolección.
type CreateCollectionRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	UserID      string `json:"user_id" validate:"required,uuid"`
	WasteTypeID string `json:"waste_type_id" validate:"required,uuid"`
	RouteID     string `json:"route_id" validate:"omitempty,uuid"`
	Status      string `json:"status" validate:"omitempty,oneof=pendiente en_proceso completada"`
}

// AssignRouteRequest vincula una recolección a una ruta.
type AssignRouteRequest struct {
	RouteID string `json:"route_id" validate:"required,uuid"`
}

// ListCollectionsRequest filtros del listado de recolecciones.
type ListCollectionsRequest struct {
	Status      string `query:"status"`
	WasteTypeID string `query:"waste_type_id"`
}

// CollectionResponse salida de una recolección con nombres resueltos.
type CollectionResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Date          string          `json:"date"`
	UserID        string          `json:"user_id"`
	UserName      string          `json:"user_name"`
	UserFullName  string          `json:"user_full_name"`
	WasteTypeID   string          `json:"waste_type_id"`
	WasteTypeName string          `json:"waste_type_name"`
	Category      string          `json:"category"`
	Points        decimal.Decimal `json:"points"`
	RouteID       string          `json:"route_id,omitempty"`
	RouteName     string          `json:"route_name,omitempty"`
	RegisteredBy  string          `json:"registered_by,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}
