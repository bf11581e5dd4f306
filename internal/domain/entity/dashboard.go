package entity

// UserCounts totales por rol.
type UserCounts struct {
	Total      int
	Admins     int
	Collectors int
	Requesters int
}

// CatalogCounts totales del catálogo de residuos.
type CatalogCounts struct {
	Total      int
	Active     int
	Inactive   int
	Categories int
}

// CollectionCounts totales globales de recolecciones.
type CollectionCounts struct {
	Total      int
	Today      int
	Pending    int
	InProgress int
	Completed  int
}

// RequestCounts totales de solicitudes.
type RequestCounts struct {
	Total    int
	Pending  int
	Approved int
	Rejected int
}
