package eventbus

import (
	"context"
	"sync"
	"testing"

	"clinic-appointments/internal/platform/logger"
	"clinic-appointments/internal/ports/events"
)

func newTestBus() *Bus {
	return New(logger.New(logger.Options{Level: logger.Error}))
}

func TestBus_DeliversToAllSubscribers(t *testing.T) {
	bus := newTestBus()

	var mu sync.Mutex
	got := make([]string, 0)

	for _, name := range []string{"a", "b"} {
		name := name
		bus.Subscribe("thing.updated", func(ctx context.Context, e events.Event) {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, name)
		})
	}

	bus.Publish(context.Background(), events.Event{Name: "thing.updated"})
	bus.Wait()

	if len(got) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(got))
	}
}

func TestBus_PanickingHandlerDoesNotAffectOthers(t *testing.T) {
	bus := newTestBus()

	delivered := make(chan struct{}, 1)
	bus.Subscribe("x", func(ctx context.Context, e events.Event) {
		panic("boom")
	})
	bus.Subscribe("x", func(ctx context.Context, e events.Event) {
		delivered <- struct{}{}
	})

	// No debe panickear hacia el publicador.
	bus.Publish(context.Background(), events.Event{Name: "x"})
	bus.Wait()

	select {
	case <-delivered:
	default:
		t.Fatalf("second handler was not delivered")
	}
}

func TestBus_SurvivesCancelledPublisherContext(t *testing.T) {
	bus := newTestBus()

	delivered := make(chan struct{}, 1)
	bus.Subscribe("x", func(ctx context.Context, e events.Event) {
		if ctx.Err() != nil {
			return
		}
		delivered <- struct{}{}
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // el request ya terminó
	bus.Publish(ctx, events.Event{Name: "x"})
	bus.Wait()

	select {
	case <-delivered:
	default:
		t.Fatalf("delivery must not inherit publisher cancellation")
	}
}

func TestBus_NoSubscribersIsNoop(t *testing.T) {
	bus := newTestBus()
	bus.Publish(context.Background(), events.Event{Name: "nobody.listens"})
	bus.Wait()
}
