package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"clinic-appointments/internal/domain/prescriptions"
)

type prescriptionsRepo struct {
	mu   sync.RWMutex
	byID map[string]prescriptions.Prescription
}

func NewPrescriptionsRepo() prescriptions.Repository {
	return &prescriptionsRepo{
		byID: make(map[string]prescriptions.Prescription),
	}
}

func (r *prescriptionsRepo) Create(ctx context.Context, p prescriptions.Prescription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		return errors.New("prescription id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("prescription already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *prescriptionsRepo) ListByAppointment(ctx context.Context, appointmentID string) ([]prescriptions.Prescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prescriptions.Prescription, 0)
	for _, p := range r.byID {
		if p.AppointmentID == appointmentID {
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
