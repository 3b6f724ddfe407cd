package memory

import (
	"context"
	"errors"
	"sync"

	"clinic-appointments/internal/domain/appointments"
	"clinic-appointments/internal/domain/invoices"
)

type invoicesRepo struct {
	mu     sync.RWMutex
	byAppt map[string]invoices.Invoice
}

func NewInvoicesRepo() invoices.Repository {
	return &invoicesRepo{
		byAppt: make(map[string]invoices.Invoice),
	}
}

func (r *invoicesRepo) Create(ctx context.Context, inv invoices.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if inv.ID == "" || inv.AppointmentID == "" {
		return errors.New("invoice id and appointment id required")
	}
	// Una factura por cita, como el índice único del postgres.
	if _, exists := r.byAppt[inv.AppointmentID]; exists {
		return appointments.ErrGuardViolation
	}
	r.byAppt[inv.AppointmentID] = inv
	return nil
}

func (r *invoicesRepo) GetByAppointment(ctx context.Context, appointmentID string) (invoices.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inv, ok := r.byAppt[appointmentID]
	if !ok {
		return invoices.Invoice{}, appointments.ErrNotFound
	}
	return inv, nil
}
