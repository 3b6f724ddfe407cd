package notifications

import (
	"time"

	"clinic-appointments/internal/domain/appointments"
)

// Notification se genera a partir de eventos del bus; nunca en el camino
// caliente de la transición.
type Notification struct {
	ID   string
	Type string // p.ej. "appointment.updated"

	AppointmentID string
	OwnerUserID   string
	PetID         string

	Changes []appointments.FieldChange
	Message string

	CreatedAt time.Time
}
