package invoices

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinic-appointments/internal/domain/appointments"

	"github.com/google/uuid"
)

// AppointmentGateway: lectura con scope y el punto único de transición.
type AppointmentGateway interface {
	GetByID(ctx context.Context, actor appointments.Actor, id string) (appointments.Appointment, error)
	Transition(ctx context.Context, actor appointments.Actor, id string, to appointments.Status) (appointments.Appointment, error)
}

type Service struct {
	repo  Repository
	appts AppointmentGateway
	now   func() time.Time
}

func NewService(repo Repository, appts AppointmentGateway) *Service {
	return &Service{
		repo:  repo,
		appts: appts,
		now:   time.Now,
	}
}

type CreateInput struct {
	AmountCents int64
}

// Create emite la factura de una cita. La transición COMPLETED -> INVOICED
// corre dentro del lock por cita del módulo appointments, que además
// valida rol (solo admin) y estado; acá solo chequeamos el duplicado.
func (s *Service) Create(ctx context.Context, actor appointments.Actor, appointmentID string, in CreateInput) (Invoice, error) {
	appointmentID = strings.TrimSpace(appointmentID)
	if appointmentID == "" || in.AmountCents < 0 {
		return Invoice{}, appointments.ErrInvalidInput
	}

	// Segunda factura para la misma cita => GuardViolation, aunque el
	// estado se hubiera tocado a mano.
	if _, err := s.repo.GetByAppointment(ctx, appointmentID); err == nil {
		return Invoice{}, appointments.ErrGuardViolation
	} else if !errors.Is(err, appointments.ErrNotFound) {
		return Invoice{}, err
	}

	a, err := s.appts.Transition(ctx, actor, appointmentID, appointments.StatusInvoiced)
	if err != nil {
		return Invoice{}, err
	}

	inv := Invoice{
		ID:            uuid.NewString(),
		AppointmentID: a.ID,
		AmountCents:   in.AmountCents,
		IssuedBy:      actor.ID,
		IssuedAt:      s.now(),
	}

	// La cita ya quedó INVOICED; si esta escritura falla, el registro de
	// factura se repone a mano (el estado bloquea una doble emisión).
	if err := s.repo.Create(ctx, inv); err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

func (s *Service) GetByAppointment(ctx context.Context, actor appointments.Actor, appointmentID string) (Invoice, error) {
	appointmentID = strings.TrimSpace(appointmentID)
	if appointmentID == "" {
		return Invoice{}, appointments.ErrInvalidInput
	}

	// El scope lo decide la lectura de la cita.
	if _, err := s.appts.GetByID(ctx, actor, appointmentID); err != nil {
		return Invoice{}, err
	}
	return s.repo.GetByAppointment(ctx, appointmentID)
}
