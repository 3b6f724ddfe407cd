package appointments

import (
	"errors"
	"testing"
)

func appt(status Status) Appointment {
	return Appointment{
		ID:          "appt-1",
		PetID:       "pet-1",
		OwnerUserID: "owner-1",
		Date:        "2025-10-10",
		TimeSlot:    "10:00",
		Status:      status,
		Version:     1,
	}
}

var allStatuses = []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusInvoiced, StatusCancelled}

func TestValidateTransition_TableIsExhaustive(t *testing.T) {
	admin := Actor{ID: "admin-1", Role: RoleAdmin}

	// Con admin pasan exactamente las filas de la tabla; todo otro par
	// (incluida la re-aplicación from==to) es GuardViolation.
	allowed := map[[2]Status]bool{
		{StatusPending, StatusConfirmed}:   true,
		{StatusPending, StatusCancelled}:   true,
		{StatusConfirmed, StatusCancelled}: true,
		{StatusConfirmed, StatusCompleted}: true,
		{StatusCompleted, StatusInvoiced}:  true,
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			err := validateTransition(appt(from), to, admin)
			if allowed[[2]Status{from, to}] {
				if err != nil {
					t.Errorf("%s -> %s: expected allowed, got %v", from, to, err)
				}
				continue
			}
			if !errors.Is(err, ErrGuardViolation) {
				t.Errorf("%s -> %s: expected ErrGuardViolation, got %v", from, to, err)
			}
		}
	}
}

func TestValidateTransition_RolesPerRow(t *testing.T) {
	owner := Actor{ID: "owner-1", Role: RoleOwner}
	vet := Actor{ID: "vet-1", Role: RoleVet}
	admin := Actor{ID: "admin-1", Role: RoleAdmin}

	cases := []struct {
		name    string
		from    Status
		to      Status
		actor   Actor
		wantErr error // nil = permitido
	}{
		{"vet confirms", StatusPending, StatusConfirmed, vet, nil},
		{"admin confirms", StatusPending, StatusConfirmed, admin, nil},
		{"owner cannot confirm", StatusPending, StatusConfirmed, owner, ErrForbidden},

		{"owner cancels own pending", StatusPending, StatusCancelled, owner, nil},
		{"owner cancels own confirmed", StatusConfirmed, StatusCancelled, owner, nil},
		{"vet cancels", StatusConfirmed, StatusCancelled, vet, nil},

		{"vet completes", StatusConfirmed, StatusCompleted, vet, nil},
		{"admin completes", StatusConfirmed, StatusCompleted, admin, nil},

		{"admin invoices", StatusCompleted, StatusInvoiced, admin, nil},
		{"vet cannot invoice", StatusCompleted, StatusInvoiced, vet, ErrForbidden},

		{"owner cannot complete", StatusConfirmed, StatusCompleted, owner, ErrForbidden},
		{"owner cannot invoice", StatusCompleted, StatusInvoiced, owner, ErrForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateTransition(appt(tc.from), tc.to, tc.actor)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("expected allowed, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestValidateTransition_OwnerScope(t *testing.T) {
	stranger := Actor{ID: "owner-2", Role: RoleOwner}

	// Cancelar la cita de otro owner es Forbidden sin importar el estado.
	for _, from := range []Status{StatusPending, StatusConfirmed} {
		err := validateTransition(appt(from), StatusCancelled, stranger)
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("%s: expected ErrForbidden for foreign cancel, got %v", from, err)
		}
		var d *DeniedError
		if !errors.As(err, &d) || d.Reason != DenyNotOwner {
			t.Fatalf("%s: expected DenyNotOwner reason, got %v", from, err)
		}
	}
}

func TestValidateTransition_OwnerNeverReachesCompletedOrInvoiced(t *testing.T) {
	owner := Actor{ID: "owner-1", Role: RoleOwner}

	// Aunque la fila existiera, el owner no llega a COMPLETED/INVOICED.
	for _, from := range allStatuses {
		for _, to := range []Status{StatusCompleted, StatusInvoiced} {
			err := validateTransition(appt(from), to, owner)
			if !errors.Is(err, ErrForbidden) {
				t.Errorf("%s -> %s: expected ErrForbidden for owner, got %v", from, to, err)
			}
		}
	}
}

func TestValidateTransition_GuardOnCompleted(t *testing.T) {
	owner := Actor{ID: "owner-1", Role: RoleOwner}

	// Cita ya COMPLETED: el cancel del owner cae por tabla (no hay fila
	// COMPLETED -> CANCELLED), que es justamente la semántica pedida.
	err := validateTransition(appt(StatusCompleted), StatusCancelled, owner)
	if !errors.Is(err, ErrGuardViolation) {
		t.Fatalf("expected ErrGuardViolation cancelling completed, got %v", err)
	}
}

func TestParseStatus_AcceptsScheduledAlias(t *testing.T) {
	st, ok := ParseStatus("scheduled")
	if !ok || st != StatusPending {
		t.Fatalf("expected scheduled to parse as PENDING, got %s ok=%v", st, ok)
	}
	if _, ok := ParseStatus("unknown"); ok {
		t.Fatalf("expected unknown status to be rejected")
	}
}
