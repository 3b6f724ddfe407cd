package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"clinic-appointments/internal/ports/events"

	"github.com/google/uuid"
)

// writeRetries: cuántas veces se reintenta una escritura que perdió la
// carrera optimista (reload + re-validar guards) antes de devolver Conflict.
const writeRetries = 2

type Service struct {
	repo Repository
	bus  events.Publisher
	now  func() time.Time

	// Un mutex por cita: serializa load -> guards -> conflicto -> save.
	// Los registros son independientes, no hay locking cruzado.
	locks sync.Map // id -> *sync.Mutex
}

// NewService recibe el bus como dependencia explícita (nada de singletons
// process-wide); pasar nil deshabilita la publicación, útil en tests.
func NewService(repo Repository, bus events.Publisher) *Service {
	return &Service{
		repo: repo,
		bus:  bus,
		now:  time.Now,
	}
}

type CreateInput struct {
	PetID       string
	OwnerUserID string // ignorado para role owner: siempre crea a su nombre
	Date        string // YYYY-MM-DD
	TimeSlot    string // HH:MM
	Reason      string
}

func (s *Service) Create(ctx context.Context, actor Actor, in CreateInput) (Appointment, error) {
	petID := strings.TrimSpace(in.PetID)
	date := strings.TrimSpace(in.Date)
	slot := strings.TrimSpace(in.TimeSlot)

	if petID == "" || date == "" || slot == "" {
		return Appointment{}, ErrInvalidInput
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return Appointment{}, ErrInvalidInput
	}
	if _, err := time.Parse("15:04", slot); err != nil {
		return Appointment{}, ErrInvalidInput
	}

	ownerID := actor.ID
	if actor.Role.IsStaff() {
		ownerID = strings.TrimSpace(in.OwnerUserID)
		if ownerID == "" {
			return Appointment{}, ErrInvalidInput
		}
	}

	if err := s.checkSlot(ctx, petID, date, slot, ""); err != nil {
		return Appointment{}, err
	}

	now := s.now()
	a := Appointment{
		ID:          uuid.NewString(),
		PetID:       petID,
		OwnerUserID: ownerID,
		Date:        date,
		TimeSlot:    slot,
		Reason:      strings.TrimSpace(in.Reason),
		Status:      StatusPending,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// El repo puede devolver ErrConflict igual (índice único del slot):
	// el chequeo de arriba es advisory fuera de lock.
	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}

	s.publish(ctx, EventCreated, UpdatedEvent{Appointment: a})
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, actor Actor, id string) (Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Appointment{}, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, err
	}
	if err := authorize(actor, ActionRead, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

// List aplica scope por rol: el owner solo ve sus propias citas.
func (s *Service) List(ctx context.Context, actor Actor, f ListFilter) ([]Appointment, error) {
	if actor.Role == RoleOwner {
		f.OwnerUserID = actor.ID
	}
	return s.repo.List(ctx, f)
}

// DaySummary es el agregado por día que consume el dashboard.
type DaySummary struct {
	Date      string `json:"date"`
	Total     int    `json:"total"`
	Pending   int    `json:"pending"`
	Confirmed int    `json:"confirmed"`
	Completed int    `json:"completed"`
	Invoiced  int    `json:"invoiced"`
	Cancelled int    `json:"cancelled"`
}

// Summary cuenta citas por día y estado en [from, to]. Sin rango: hoy + 6 días.
func (s *Service) Summary(ctx context.Context, actor Actor, from, to string) ([]DaySummary, error) {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)

	if from == "" || to == "" {
		today := s.now()
		from = today.Format("2006-01-02")
		to = today.AddDate(0, 0, 6).Format("2006-01-02")
	}

	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil, ErrInvalidInput
	}
	end, err := time.Parse("2006-01-02", to)
	if err != nil || end.Before(start) {
		return nil, ErrInvalidInput
	}

	f := ListFilter{FromDate: from, ToDate: to}
	if actor.Role == RoleOwner {
		f.OwnerUserID = actor.ID
	}

	items, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*DaySummary)
	for _, a := range items {
		d, ok := byDate[a.Date]
		if !ok {
			d = &DaySummary{Date: a.Date}
			byDate[a.Date] = d
		}
		d.Total++
		switch a.Status {
		case StatusPending:
			d.Pending++
		case StatusConfirmed:
			d.Confirmed++
		case StatusCompleted:
			d.Completed++
		case StatusInvoiced:
			d.Invoiced++
		case StatusCancelled:
			d.Cancelled++
		}
	}

	// Rango completo, con ceros para los días sin citas.
	out := make([]DaySummary, 0)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		if v, ok := byDate[key]; ok {
			out = append(out, *v)
		} else {
			out = append(out, DaySummary{Date: key})
		}
	}
	return out, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Date      *string
	TimeSlot  *string
	Reason    *string
	Diagnosis *string
}

// Update reprograma fecha/hora o edita reason/diagnosis. Los cambios de
// estado NO pasan por acá: solo por Transition.
func (s *Service) Update(ctx context.Context, actor Actor, id string, in UpdateInput) (Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Appointment{}, ErrInvalidInput
	}
	if in.Date == nil && in.TimeSlot == nil && in.Reason == nil && in.Diagnosis == nil {
		return Appointment{}, ErrInvalidInput
	}
	if in.Date != nil {
		if _, err := time.Parse("2006-01-02", strings.TrimSpace(*in.Date)); err != nil {
			return Appointment{}, ErrInvalidInput
		}
	}
	if in.TimeSlot != nil {
		if _, err := time.Parse("15:04", strings.TrimSpace(*in.TimeSlot)); err != nil {
			return Appointment{}, ErrInvalidInput
		}
	}

	mu := s.lockFor(id)
	mu.Lock()
	updated, changes, err := s.updateLocked(ctx, actor, id, in)
	mu.Unlock()
	if err != nil {
		return Appointment{}, err
	}

	if len(changes) > 0 {
		s.publish(ctx, EventUpdated, UpdatedEvent{Appointment: updated, Changes: changes})
	}
	return updated, nil
}

func (s *Service) updateLocked(ctx context.Context, actor Actor, id string, in UpdateInput) (Appointment, []FieldChange, error) {
	for attempt := 0; ; attempt++ {
		a, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return Appointment{}, nil, err
		}

		changes := make([]FieldChange, 0, 4)
		next := a

		if in.Date != nil && strings.TrimSpace(*in.Date) != a.Date {
			next.Date = strings.TrimSpace(*in.Date)
			changes = append(changes, FieldChange{Field: "date", From: a.Date, To: next.Date})
		}
		if in.TimeSlot != nil && strings.TrimSpace(*in.TimeSlot) != a.TimeSlot {
			next.TimeSlot = strings.TrimSpace(*in.TimeSlot)
			changes = append(changes, FieldChange{Field: "time", From: a.TimeSlot, To: next.TimeSlot})
		}
		if in.Reason != nil && strings.TrimSpace(*in.Reason) != a.Reason {
			next.Reason = strings.TrimSpace(*in.Reason)
			changes = append(changes, FieldChange{Field: "reason", From: a.Reason, To: next.Reason})
		}

		rescheduling := next.Date != a.Date || next.TimeSlot != a.TimeSlot || next.Reason != a.Reason
		if rescheduling {
			if err := authorize(actor, ActionReschedule, a); err != nil {
				return Appointment{}, nil, err
			}
		}

		if in.Diagnosis != nil && strings.TrimSpace(*in.Diagnosis) != a.Diagnosis {
			if err := authorize(actor, ActionSetDiagnosis, a); err != nil {
				return Appointment{}, nil, err
			}
			next.Diagnosis = strings.TrimSpace(*in.Diagnosis)
			changes = append(changes, FieldChange{Field: "diagnosis", From: a.Diagnosis, To: next.Diagnosis})
		}

		if len(changes) == 0 {
			return a, nil, nil
		}

		// Si se movió el slot y la cita sigue activa, re-chequear conflicto
		// dentro del lock, excluyéndose a sí misma.
		slotMoved := next.Date != a.Date || next.TimeSlot != a.TimeSlot
		if slotMoved && next.Status.IsActive() {
			if err := s.checkSlot(ctx, next.PetID, next.Date, next.TimeSlot, next.ID); err != nil {
				return Appointment{}, nil, err
			}
		}

		next.UpdatedAt = s.now()
		if err := s.repo.Update(ctx, next); err != nil {
			if errors.Is(err, ErrVersionConflict) {
				if attempt < writeRetries {
					continue
				}
				return Appointment{}, nil, ErrConflict
			}
			return Appointment{}, nil, err
		}
		next.Version++
		return next, changes, nil
	}
}

// Transition es el punto único de mutación de estado: valida la fila de la
// tabla contra el estado persistido, dentro del lock por cita, y aplica
// el cambio de forma atómica (solo cambia el estado, o nada).
func (s *Service) Transition(ctx context.Context, actor Actor, id string, to Status) (Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Appointment{}, ErrInvalidInput
	}

	mu := s.lockFor(id)
	mu.Lock()
	updated, rec, err := s.transitionLocked(ctx, actor, id, to)
	mu.Unlock()
	if err != nil {
		return Appointment{}, err
	}

	// Dispatch fuera del lock, best-effort: su falla jamás voltea la transición.
	s.publish(ctx, EventUpdated, UpdatedEvent{
		Appointment: updated,
		Changes:     []FieldChange{{Field: "status", From: string(rec.From), To: string(rec.To)}},
		Transition:  &rec,
	})
	return updated, nil
}

func (s *Service) transitionLocked(ctx context.Context, actor Actor, id string, to Status) (Appointment, TransitionRecord, error) {
	for attempt := 0; ; attempt++ {
		a, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return Appointment{}, TransitionRecord{}, err
		}

		if err := validateTransition(a, to, actor); err != nil {
			return Appointment{}, TransitionRecord{}, err
		}

		// Confirmar re-ocupa el slot: re-validar conflicto dentro del lock.
		if to == StatusConfirmed {
			if err := s.checkSlot(ctx, a.PetID, a.Date, a.TimeSlot, a.ID); err != nil {
				return Appointment{}, TransitionRecord{}, err
			}
		}

		now := s.now()
		rec := TransitionRecord{
			AppointmentID: a.ID,
			From:          a.Status,
			To:            to,
			ActorID:       actor.ID,
			ActorRole:     actor.Role,
			At:            now,
		}

		a.Status = to
		a.UpdatedAt = now

		if err := s.repo.Update(ctx, a); err != nil {
			if errors.Is(err, ErrVersionConflict) {
				if attempt < writeRetries {
					continue
				}
				return Appointment{}, TransitionRecord{}, ErrConflict
			}
			return Appointment{}, TransitionRecord{}, err
		}
		a.Version++
		return a, rec, nil
	}
}

// Delete es el borrado administrativo, no gobernado por el state machine.
func (s *Service) Delete(ctx context.Context, actor Actor, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(actor, ActionDelete, a); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// checkSlot: fail-closed. Si el lookup falla no asumimos "sin conflicto";
// se bloquea la escritura con ErrTransient antes que arriesgar double-booking.
func (s *Service) checkSlot(ctx context.Context, petID, date, slot, excludeID string) error {
	conflict, err := s.repo.FindActiveBySlot(ctx, petID, date, slot, excludeID)
	if err != nil {
		return fmt.Errorf("%w: slot lookup failed", ErrTransient)
	}
	if conflict {
		return ErrConflict
	}
	return nil
}

func (s *Service) publish(ctx context.Context, name string, payload UpdatedEvent) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, events.Event{Name: name, Payload: payload})
}

func (s *Service) lockFor(id string) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return v.(*sync.Mutex)
}
