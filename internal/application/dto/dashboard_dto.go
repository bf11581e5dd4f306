package dto

// DashboardStatsResponse indicadores globales (administración).
type DashboardStatsResponse struct {
	Users       UserCountsDTO       `json:"users"`
	WasteTypes  CatalogCountsDTO    `json:"waste_types"`
	Collections CollectionCountsDTO `json:"collections"`
	Requests    RequestCountsDTO    `json:"requests"`
}

// UserCountsDTO totales por rol.
type UserCountsDTO struct {
	Total      int `json:"total"`
	Admins     int `json:"admins"`
	Collectors int `json:"collectors"`
	Requesters int `json:"requesters"`
}

// CatalogCountsDTO totales del catálogo.
type CatalogCountsDTO struct {
	Total      int `json:"total"`
	Active     int `json:"active"`
	Inactive   int `json:"inactive"`
	Categories int `json:"categories"`
}

// CollectionCountsDTO totales de recolecciones.
type CollectionCountsDTO struct {
	Total      int `json:"total"`
	Today      int `json:"today"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}

// RequestCountsDTO totales de solicitudes.
type RequestCountsDTO struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// PersonalDashboardResponse indicadores del usuario autenticado.
type PersonalDashboardResponse struct {
	Collections int              `json:"collections"`
	Requests    RequestCountsDTO `json:"requests"`
}
