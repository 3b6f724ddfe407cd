package invoices

import "context"

type Repository interface {
	// Create falla si ya existe invoice para la misma cita.
	Create(ctx context.Context, inv Invoice) error
	GetByAppointment(ctx context.Context, appointmentID string) (Invoice, error)
}
