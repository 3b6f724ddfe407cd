package main

import (
	"net/http"
	"os"
	"time"

	"clinic-appointments/internal/adapters/auth/identity"
	"clinic-appointments/internal/platform/logger"
	"clinic-appointments/internal/ports/auth"
	"clinic-appointments/internal/router"
)

// @title Clinic Appointments API
// @version 1.0
// @description Appointment lifecycle, prescriptions, invoicing and owner notifications for a veterinary clinic.
// @BasePath /
func main() {
	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	// Sin AUTH_BASE_URL el servicio queda en modo dev (headers X-Debug-*).
	var verifier auth.AuthVerifier
	if baseURL := os.Getenv("AUTH_BASE_URL"); baseURL != "" {
		client, err := identity.NewClient(identity.Config{
			BaseURL: baseURL,
			APIKey:  os.Getenv("AUTH_API_KEY"),
		})
		if err != nil {
			log.Error("invalid auth config", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		verifier = identity.NewVerifier(client)
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Log:          log,
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
