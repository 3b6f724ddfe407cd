package prescriptions

import (
	"context"
	"strings"
	"time"

	"clinic-appointments/internal/domain/appointments"

	"github.com/google/uuid"
)

// AppointmentSource es lo único que este módulo necesita del módulo de
// citas: lectura con scope ya aplicado.
type AppointmentSource interface {
	GetByID(ctx context.Context, actor appointments.Actor, id string) (appointments.Appointment, error)
}

type Service struct {
	repo  Repository
	appts AppointmentSource
	now   func() time.Time
}

func NewService(repo Repository, appts AppointmentSource) *Service {
	return &Service{
		repo:  repo,
		appts: appts,
		now:   time.Now,
	}
}

type CreateInput struct {
	Medication string
	Dosage     string
	Notes      string
}

// Create emite una receta para la cita. Guards:
// - solo vet/admin,
// - nunca sobre una cita CANCELLED (sin importar rol),
// - solo mientras la cita está antes de INVOICED.
func (s *Service) Create(ctx context.Context, actor appointments.Actor, appointmentID string, in CreateInput) (Prescription, error) {
	appointmentID = strings.TrimSpace(appointmentID)
	if appointmentID == "" || strings.TrimSpace(in.Medication) == "" {
		return Prescription{}, appointments.ErrInvalidInput
	}

	if !actor.Role.IsStaff() {
		return Prescription{}, appointments.ErrForbidden
	}

	a, err := s.appts.GetByID(ctx, actor, appointmentID)
	if err != nil {
		return Prescription{}, err
	}

	if a.Status == appointments.StatusCancelled || a.Status == appointments.StatusInvoiced {
		return Prescription{}, appointments.ErrGuardViolation
	}

	p := Prescription{
		ID:            uuid.NewString(),
		AppointmentID: a.ID,
		Medication:    strings.TrimSpace(in.Medication),
		Dosage:        strings.TrimSpace(in.Dosage),
		Notes:         strings.TrimSpace(in.Notes),
		CreatedBy:     actor.ID,
		CreatedAt:     s.now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Prescription{}, err
	}
	return p, nil
}

// ListByAppointment delega el scope en la lectura de la cita:
// si el actor puede ver la cita, puede ver sus recetas.
func (s *Service) ListByAppointment(ctx context.Context, actor appointments.Actor, appointmentID string) ([]Prescription, error) {
	appointmentID = strings.TrimSpace(appointmentID)
	if appointmentID == "" {
		return nil, appointments.ErrInvalidInput
	}

	if _, err := s.appts.GetByID(ctx, actor, appointmentID); err != nil {
		return nil, err
	}
	return s.repo.ListByAppointment(ctx, appointmentID)
}
