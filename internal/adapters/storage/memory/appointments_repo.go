package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"clinic-appointments/internal/domain/appointments"
)

type appointmentsRepo struct {
	mu   sync.RWMutex
	byID map[string]appointments.Appointment
}

func NewAppointmentsRepo() appointments.Repository {
	return &appointmentsRepo{
		byID: make(map[string]appointments.Appointment),
	}
}

func (r *appointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID == "" {
		return errors.New("appointment id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("appointment already exists")
	}

	// Respaldo del índice único de slot que tiene la variante postgres.
	for _, other := range r.byID {
		if other.Status.IsActive() && other.PetID == a.PetID && other.Date == a.Date && other.TimeSlot == a.TimeSlot {
			return appointments.ErrConflict
		}
	}

	r.byID[a.ID] = a
	return nil
}

func (r *appointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	return a, nil
}

func (r *appointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[a.ID]
	if !ok {
		return appointments.ErrNotFound
	}
	// Chequeo optimista: el registro cambió desde el load => no se escribe.
	if stored.Version != a.Version {
		return appointments.ErrVersionConflict
	}

	a.Version++
	r.byID[a.ID] = a
	return nil
}

func (r *appointmentsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return appointments.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *appointmentsRepo) List(ctx context.Context, f appointments.ListFilter) ([]appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]appointments.Appointment, 0)
	for _, a := range r.byID {
		if f.OwnerUserID != "" && a.OwnerUserID != f.OwnerUserID {
			continue
		}
		if f.PetID != "" && a.PetID != f.PetID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.Date != "" && a.Date != f.Date {
			continue
		}
		if f.FromDate != "" && a.Date < f.FromDate {
			continue
		}
		if f.ToDate != "" && a.Date > f.ToDate {
			continue
		}
		out = append(out, a)
	}

	// Orden estable por fecha y hora, como el listado del postgres.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].TimeSlot < out[j].TimeSlot
	})

	return out, nil
}

func (r *appointmentsRepo) FindActiveBySlot(ctx context.Context, petID, date, timeSlot, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.byID {
		if excludeID != "" && a.ID == excludeID {
			continue
		}
		if !a.Status.IsActive() {
			continue
		}
		if a.PetID == petID && a.Date == date && a.TimeSlot == timeSlot {
			return true, nil
		}
	}
	return false, nil
}
