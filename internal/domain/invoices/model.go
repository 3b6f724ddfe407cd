package invoices

import "time"

// Invoice: a lo sumo una por cita; emitirla es lo que mueve la cita
// de COMPLETED a INVOICED.
type Invoice struct {
	ID            string
	AppointmentID string

	// Monto en centavos, para no arrastrar floats por el wire.
	AmountCents int64

	IssuedBy string // admin que la emitió
	IssuedAt time.Time
}
