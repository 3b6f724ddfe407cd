package prescriptions

import "context"

type Repository interface {
	Create(ctx context.Context, p Prescription) error
	ListByAppointment(ctx context.Context, appointmentID string) ([]Prescription, error)
}
