package eventbus

import (
	"context"
	"fmt"
	"sync"

	"clinic-appointments/internal/platform/logger"
	"clinic-appointments/internal/ports/events"
)

// Bus es el dispatcher in-process de eventos de dominio. Entrega async,
// best-effort: un handler que falla o panickea se loguea y no afecta ni
// al publicador ni al resto de los handlers.
//
// Se inyecta explícitamente donde haga falta (nada de singleton global);
// detrás del port events.Bus se puede enchufar un broker real después.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]events.Handler

	log logger.Logger
	wg  sync.WaitGroup
}

func New(log logger.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]events.Handler),
		log:      log,
	}
}

func (b *Bus) Subscribe(eventName string, h events.Handler) {
	if h == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], h)
}

// Publish nunca bloquea ni devuelve error: cada handler corre en su propia
// goroutine. El ctx se desacopla del request para que la entrega sobreviva
// a la respuesta HTTP.
func (b *Bus) Publish(ctx context.Context, e events.Event) {
	b.mu.RLock()
	hs := make([]events.Handler, len(b.handlers[e.Name]))
	copy(hs, b.handlers[e.Name])
	b.mu.RUnlock()

	if len(hs) == 0 {
		return
	}

	detached := context.WithoutCancel(ctx)
	for _, h := range hs {
		b.wg.Add(1)
		go func(h events.Handler) {
			defer b.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					b.log.Error("eventbus: handler panic", map[string]any{
						"event": e.Name,
						"panic": fmt.Sprintf("%v", r),
					})
				}
			}()
			h(detached, e)
		}(h)
	}
}

// Wait espera las entregas en vuelo. Para shutdown y tests.
func (b *Bus) Wait() {
	b.wg.Wait()
}
