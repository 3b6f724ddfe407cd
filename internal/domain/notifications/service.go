package notifications

import (
	"context"
	"strings"
	"time"

	"clinic-appointments/internal/domain/appointments"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Campos que entran al mensaje; el resto de los cambios se guarda igual
// pero no se narra.
var fieldLabels = map[string]string{
	"date":   "date",
	"time":   "time",
	"status": "status",
	"reason": "reason",
}

// Record persiste la notificación derivada de un evento de cita.
func (s *Service) Record(ctx context.Context, eventName string, ev appointments.UpdatedEvent) (Notification, error) {
	a := ev.Appointment
	if strings.TrimSpace(a.ID) == "" {
		return Notification{}, appointments.ErrInvalidInput
	}

	n := Notification{
		ID:            uuid.NewString(),
		Type:          eventName,
		AppointmentID: a.ID,
		OwnerUserID:   a.OwnerUserID,
		PetID:         a.PetID,
		Changes:       ev.Changes,
		Message:       buildMessage(a, ev.Changes),
		CreatedAt:     s.now(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return Notification{}, err
	}
	return n, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Notification, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, appointments.ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, ownerUserID)
}

func buildMessage(a appointments.Appointment, changes []appointments.FieldChange) string {
	parts := make([]string, 0, len(changes))
	for _, c := range changes {
		if label, ok := fieldLabels[c.Field]; ok {
			parts = append(parts, label)
		}
	}

	if len(parts) == 0 {
		return "Appointment updated for pet " + a.PetID + "."
	}
	return "Appointment " + strings.Join(parts, ", ") + " updated for pet " + a.PetID + "."
}
