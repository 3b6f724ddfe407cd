package appointments

import "time"

// Appointment es la entidad central del servicio.
// Invariante: a lo sumo una cita activa (status != CANCELLED) por
// (PetID, Date, TimeSlot).
type Appointment struct {
	ID string

	PetID       string
	OwnerUserID string

	Date     string // YYYY-MM-DD
	TimeSlot string // HH:MM

	Reason string
	// Diagnosis solo tiene sentido desde COMPLETED en adelante;
	// antes de eso los consumidores (invoice/prescription) la ignoran.
	Diagnosis string

	Status Status

	// Version respalda el chequeo optimista del repo: Update falla
	// si el registro cambió desde el load.
	Version int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FieldChange describe un campo modificado, para los eventos del bus.
type FieldChange struct {
	Field string `json:"field"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// TransitionRecord reconstruye la decisión del motor de transiciones.
type TransitionRecord struct {
	AppointmentID string    `json:"appointment_id"`
	From          Status    `json:"from"`
	To            Status    `json:"to"`
	ActorID       string    `json:"actor_id"`
	ActorRole     Role      `json:"actor_role"`
	At            time.Time `json:"at"`
}

// Nombres de eventos publicados al bus.
const (
	EventCreated = "appointment.created"
	EventUpdated = "appointment.updated"
)

// UpdatedEvent es el payload de EventCreated/EventUpdated.
type UpdatedEvent struct {
	Appointment Appointment
	Changes     []FieldChange
	Transition  *TransitionRecord // nil si fue create/reschedule
}
