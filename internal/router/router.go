package router

import (
	"database/sql"
	"net/http"
	"os"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	_ "clinic-appointments/docs"
	mem "clinic-appointments/internal/adapters/storage/memory"
	pg "clinic-appointments/internal/adapters/storage/postgres"

	"clinic-appointments/internal/adapters/notify/webhook"
	"clinic-appointments/internal/domain/appointments"
	"clinic-appointments/internal/domain/invoices"
	"clinic-appointments/internal/domain/notifications"
	"clinic-appointments/internal/domain/prescriptions"
	"clinic-appointments/internal/middleware"
	"clinic-appointments/internal/platform/eventbus"
	"clinic-appointments/internal/platform/logger"
	"clinic-appointments/internal/ports/auth"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: si es nil, se crea desde env.
	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	var (
		apptRepo  appointments.Repository
		prescRepo prescriptions.Repository
		invRepo   invoices.Repository
		notifRepo notifications.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres unavailable, falling back to memory", map[string]any{"error": err.Error()})
			}
		}
	}

	if db != nil {
		apptRepo = pg.NewAppointmentsRepo(db)
		prescRepo = pg.NewPrescriptionsRepo(db)
		invRepo = pg.NewInvoicesRepo(db)
		notifRepo = pg.NewNotificationsRepo(db)
	} else {
		apptRepo = mem.NewAppointmentsRepo()
		prescRepo = mem.NewPrescriptionsRepo()
		invRepo = mem.NewInvoicesRepo()
		notifRepo = mem.NewNotificationsRepo()
	}

	// Bus compartido: appointments publica, notifications y el webhook escuchan.
	bus := eventbus.New(log)

	// Services por módulo
	apptsSvc := appointments.NewService(apptRepo, bus)
	prescSvc := prescriptions.NewService(prescRepo, apptsSvc)
	invSvc := invoices.NewService(invRepo, apptsSvc)
	notifSvc := notifications.NewService(notifRepo)

	notifications.RegisterListener(bus, notifSvc, log)

	if url := os.Getenv("NOTIFY_WEBHOOK_URL"); url != "" {
		webhook.New(webhook.Config{URL: url}, log).Register(bus)
	}

	// Rutas por módulo
	appointments.RegisterRoutes(r, apptsSvc)
	prescriptions.RegisterRoutes(r, prescSvc)
	invoices.RegisterRoutes(r, invSvc)
	notifications.RegisterRoutes(r, notifSvc)

	return r
}
