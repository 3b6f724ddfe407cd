package appointments

import "context"

// ListFilter es una especificación explícita de búsqueda (sin builders
// mutables): los campos vacíos no filtran.
type ListFilter struct {
	OwnerUserID string
	PetID       string
	Status      Status
	Date        string
	FromDate    string
	ToDate      string
}

type Repository interface {
	Create(ctx context.Context, a Appointment) error
	GetByID(ctx context.Context, id string) (Appointment, error)
	// Update compara a.Version contra lo persistido; si no coincide
	// devuelve ErrVersionConflict y no escribe nada.
	Update(ctx context.Context, a Appointment) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ListFilter) ([]Appointment, error)
	// FindActiveBySlot: ¿hay otra cita activa (status != CANCELLED) en el
	// mismo (petID, date, timeSlot)? excludeID descarta la cita que se está
	// modificando. Lectura pura, sin side effects.
	FindActiveBySlot(ctx context.Context, petID, date, timeSlot, excludeID string) (bool, error)
}
