package prescriptions

import "time"

// Prescription cuelga de una cita; su creación está gobernada por el
// estado de la cita, no por un lifecycle propio.
type Prescription struct {
	ID            string
	AppointmentID string

	Medication string
	Dosage     string
	Notes      string

	CreatedBy string // user id del vet/admin que la emitió
	CreatedAt time.Time
}
