package invoices

import (
	"context"
	"errors"
	"sync"
	"testing"

	"clinic-appointments/internal/domain/appointments"
)

// Repo de citas mínimo para armar un appointments.Service real:
// así la factura se prueba contra el motor de transiciones de verdad.
type apptRepo struct {
	mu   sync.Mutex
	byID map[string]appointments.Appointment
}

func newApptRepo() *apptRepo {
	return &apptRepo{byID: map[string]appointments.Appointment{}}
}

func (r *apptRepo) Create(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[a.ID] = a
	return nil
}

func (r *apptRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	return a, nil
}

func (r *apptRepo) Update(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[a.ID]
	if !ok {
		return appointments.ErrNotFound
	}
	if stored.Version != a.Version {
		return appointments.ErrVersionConflict
	}
	a.Version++
	r.byID[a.ID] = a
	return nil
}

func (r *apptRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func (r *apptRepo) List(ctx context.Context, f appointments.ListFilter) ([]appointments.Appointment, error) {
	return nil, nil
}

func (r *apptRepo) FindActiveBySlot(ctx context.Context, petID, date, timeSlot, excludeID string) (bool, error) {
	return false, nil
}

type invRepo struct {
	byAppt map[string]Invoice
}

func newInvRepo() *invRepo {
	return &invRepo{byAppt: map[string]Invoice{}}
}

func (r *invRepo) Create(ctx context.Context, inv Invoice) error {
	if _, ok := r.byAppt[inv.AppointmentID]; ok {
		return appointments.ErrGuardViolation
	}
	r.byAppt[inv.AppointmentID] = inv
	return nil
}

func (r *invRepo) GetByAppointment(ctx context.Context, appointmentID string) (Invoice, error) {
	inv, ok := r.byAppt[appointmentID]
	if !ok {
		return Invoice{}, appointments.ErrNotFound
	}
	return inv, nil
}

var (
	owner = appointments.Actor{ID: "owner-1", Role: appointments.RoleOwner}
	vet   = appointments.Actor{ID: "vet-1", Role: appointments.RoleVet}
	admin = appointments.Actor{ID: "admin-1", Role: appointments.RoleAdmin}
)

func fixture(status appointments.Status) (*Service, *apptRepo, *invRepo) {
	ar := newApptRepo()
	_ = ar.Create(context.Background(), appointments.Appointment{
		ID:          "appt-1",
		PetID:       "pet-1",
		OwnerUserID: "owner-1",
		Date:        "2025-10-10",
		TimeSlot:    "10:00",
		Status:      status,
		Version:     1,
	})

	apptsSvc := appointments.NewService(ar, nil)
	ir := newInvRepo()
	return NewService(ir, apptsSvc), ar, ir
}

func TestService_Create_AdminInvoicesCompleted(t *testing.T) {
	svc, ar, _ := fixture(appointments.StatusCompleted)

	inv, err := svc.Create(context.Background(), admin, "appt-1", CreateInput{AmountCents: 15000})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if inv.AppointmentID != "appt-1" || inv.IssuedBy != admin.ID {
		t.Fatalf("bad invoice: %+v", inv)
	}

	a, _ := ar.GetByID(context.Background(), "appt-1")
	if a.Status != appointments.StatusInvoiced {
		t.Fatalf("expected appointment INVOICED, got %s", a.Status)
	}
}

func TestService_Create_SecondInvoiceIsGuardViolation(t *testing.T) {
	svc, _, _ := fixture(appointments.StatusCompleted)

	if _, err := svc.Create(context.Background(), admin, "appt-1", CreateInput{AmountCents: 100}); err != nil {
		t.Fatalf("first invoice error: %v", err)
	}

	_, err := svc.Create(context.Background(), admin, "appt-1", CreateInput{AmountCents: 100})
	if !errors.Is(err, appointments.ErrGuardViolation) {
		t.Fatalf("expected ErrGuardViolation on second invoice, got %v", err)
	}
}

func TestService_Create_RequiresCompleted(t *testing.T) {
	for _, st := range []appointments.Status{appointments.StatusPending, appointments.StatusConfirmed, appointments.StatusCancelled} {
		svc, ar, _ := fixture(st)

		_, err := svc.Create(context.Background(), admin, "appt-1", CreateInput{AmountCents: 100})
		if !errors.Is(err, appointments.ErrGuardViolation) {
			t.Fatalf("%s: expected ErrGuardViolation, got %v", st, err)
		}

		a, _ := ar.GetByID(context.Background(), "appt-1")
		if a.Status != st {
			t.Fatalf("%s: appointment must stay untouched, got %s", st, a.Status)
		}
	}
}

func TestService_Create_RoleChecks(t *testing.T) {
	for _, actor := range []appointments.Actor{owner, vet} {
		svc, _, ir := fixture(appointments.StatusCompleted)

		_, err := svc.Create(context.Background(), actor, "appt-1", CreateInput{AmountCents: 100})
		if !errors.Is(err, appointments.ErrForbidden) {
			t.Fatalf("%s: expected ErrForbidden, got %v", actor.Role, err)
		}
		if len(ir.byAppt) != 0 {
			t.Fatalf("%s: no invoice should exist", actor.Role)
		}
	}
}

func TestService_GetByAppointment_OwnerScope(t *testing.T) {
	svc, _, _ := fixture(appointments.StatusCompleted)

	if _, err := svc.Create(context.Background(), admin, "appt-1", CreateInput{AmountCents: 100}); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := svc.GetByAppointment(context.Background(), owner, "appt-1"); err != nil {
		t.Fatalf("owner reads own invoice: %v", err)
	}

	strangerOwner := appointments.Actor{ID: "owner-2", Role: appointments.RoleOwner}
	if _, err := svc.GetByAppointment(context.Background(), strangerOwner, "appt-1"); !errors.Is(err, appointments.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
