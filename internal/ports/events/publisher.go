package events

import "context"

// Event es el sobre genérico que viaja por el bus.
// Payload queda tipado por el módulo que publica (ver appointments).
type Event struct {
	Name    string
	Payload any
}

// Publisher publica eventos fire-and-forget.
// El publicador nunca espera ni propaga fallos de los consumidores.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

// Handler procesa un evento entregado por el bus.
type Handler func(ctx context.Context, e Event)

// Bus permite además registrar suscriptores por nombre de evento.
type Bus interface {
	Publisher
	Subscribe(eventName string, h Handler)
}
