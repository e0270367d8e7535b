package adoptions

import "time"

// Status define el ciclo de vida de una solicitud de adopción.
// @Enum pending, accepted, rejected
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Request representa la solicitud de un adoptante sobre una mascota.
// OwnerEmail se copia de la mascota al crearla para poder listar las
// solicitudes de un dueño sin join.
type Request struct {
	ID string

	PetID   string
	PetName string

	OwnerEmail string

	RequesterName  string
	RequesterEmail string
	Phone          string
	Address        string

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
