package webhook

import (
	"context"
	"net/http"
	"strings"
	"time"

	"clinic-appointments/internal/domain/appointments"
	"clinic-appointments/internal/platform/httpclient"
	"clinic-appointments/internal/platform/logger"
	"clinic-appointments/internal/ports/events"
)

// Notifier reenvía eventos del bus a un webhook externo (p.ej. un servicio
// de mensajería que manda emails/SMS al dueño). Es best-effort: una falla
// del webhook se loguea y nada más, nunca afecta la escritura que la originó.
type Notifier struct {
	url  string
	http *httpclient.Client
	log  logger.Logger
}

type Config struct {
	URL     string
	Timeout time.Duration
}

func New(cfg Config, log logger.Logger) *Notifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = httpclient.DefaultTimeout
	}
	return &Notifier{
		url:  strings.TrimSpace(cfg.URL),
		http: httpclient.New(timeout),
		log:  log,
	}
}

func (n *Notifier) IsConfigured() bool {
	return n != nil && n.url != ""
}

// Register suscribe el notifier a los eventos de citas.
func (n *Notifier) Register(bus events.Bus) {
	if !n.IsConfigured() {
		return
	}
	bus.Subscribe(appointments.EventCreated, n.handle)
	bus.Subscribe(appointments.EventUpdated, n.handle)
}

type deliveryBody struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

func (n *Notifier) handle(ctx context.Context, e events.Event) {
	body := deliveryBody{
		Event:   e.Name,
		Payload: e.Payload,
	}

	if err := n.http.DoJSON(ctx, http.MethodPost, n.url, nil, body, nil); err != nil {
		n.log.Warn("webhook delivery failed", map[string]any{
			"event": e.Name,
			"error": err.Error(),
		})
		return
	}

	n.log.Debug("webhook delivered", map[string]any{"event": e.Name})
}
