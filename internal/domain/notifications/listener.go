package notifications

import (
	"context"

	"clinic-appointments/internal/domain/appointments"
	"clinic-appointments/internal/platform/logger"
	"clinic-appointments/internal/ports/events"
)

// RegisterListener suscribe el módulo al bus. El bus entrega async y este
// handler nunca devuelve error hacia quien publicó: falla => log y listo.
func RegisterListener(bus events.Bus, svc *Service, log logger.Logger) {
	handler := func(ctx context.Context, e events.Event) {
		ev, ok := e.Payload.(appointments.UpdatedEvent)
		if !ok {
			log.Warn("notifications: unexpected payload", map[string]any{"event": e.Name})
			return
		}

		if _, err := svc.Record(ctx, e.Name, ev); err != nil {
			log.Error("notifications: failed to record", map[string]any{
				"event":          e.Name,
				"appointment_id": ev.Appointment.ID,
				"err":            err.Error(),
			})
		}
	}

	bus.Subscribe(appointments.EventCreated, handler)
	bus.Subscribe(appointments.EventUpdated, handler)
}
