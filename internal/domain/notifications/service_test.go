package notifications

import (
	"context"
	"errors"
	"testing"

	"clinic-appointments/internal/domain/appointments"
)

type testRepo struct {
	items []Notification
}

func (r *testRepo) Create(ctx context.Context, n Notification) error {
	if n.ID == "" {
		return errors.New("repo: id required")
	}
	r.items = append(r.items, n)
	return nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Notification, error) {
	out := make([]Notification, 0)
	for _, n := range r.items {
		if n.OwnerUserID == ownerUserID {
			out = append(out, n)
		}
	}
	return out, nil
}

func sampleEvent(changes []appointments.FieldChange) appointments.UpdatedEvent {
	return appointments.UpdatedEvent{
		Appointment: appointments.Appointment{
			ID:          "appt-1",
			PetID:       "pet-1",
			OwnerUserID: "owner-1",
			Status:      appointments.StatusConfirmed,
		},
		Changes: changes,
	}
}

func TestService_Record_MessageFromChangedFields(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo)

	n, err := svc.Record(context.Background(), appointments.EventUpdated, sampleEvent([]appointments.FieldChange{
		{Field: "date", From: "2025-10-10", To: "2025-10-11"},
		{Field: "time", From: "10:00", To: "11:00"},
	}))
	if err != nil {
		t.Fatalf("Record error: %v", err)
	}

	want := "Appointment date, time updated for pet pet-1."
	if n.Message != want {
		t.Fatalf("expected %q, got %q", want, n.Message)
	}
	if n.OwnerUserID != "owner-1" {
		t.Fatalf("expected owner captured, got %s", n.OwnerUserID)
	}
}

func TestService_Record_IgnoresUnknownFieldsInMessage(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo)

	n, err := svc.Record(context.Background(), appointments.EventUpdated, sampleEvent([]appointments.FieldChange{
		{Field: "diagnosis", From: "", To: "otitis"},
	}))
	if err != nil {
		t.Fatalf("Record error: %v", err)
	}

	// diagnosis no se narra, pero el cambio queda guardado.
	if n.Message != "Appointment updated for pet pet-1." {
		t.Fatalf("unexpected message %q", n.Message)
	}
	if len(n.Changes) != 1 {
		t.Fatalf("expected raw changes kept, got %d", len(n.Changes))
	}
}

func TestService_ListByOwner_Scoped(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo)

	_, _ = svc.Record(context.Background(), appointments.EventUpdated, sampleEvent(nil))

	other := sampleEvent(nil)
	other.Appointment.OwnerUserID = "owner-2"
	_, _ = svc.Record(context.Background(), appointments.EventUpdated, other)

	mine, err := svc.ListByOwner(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(mine))
	}
}
