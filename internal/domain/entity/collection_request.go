package entity

import "time"

// Estados de una solicitud de recolección.
const (
	RequestPending  = "pendiente"
	RequestApproved = "aprobada"
	RequestRejected = "rechazada"
)

// CollectionRequest solicitud de recogida creada por un solicitante.
type CollectionRequest struct {
	ID            string
	UserID        string
	Description   string
	Address       string
	PreferredDate *time.Time
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
