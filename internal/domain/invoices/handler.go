package invoices

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"clinic-appointments/internal/domain/appointments"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/appointments/{appointmentID}/invoice", func(ir chi.Router) {
		ir.Post("/", createHandler(svc))
		ir.Get("/", getHandler(svc))
	})
}

type createRequest struct {
	AmountCents int64 `json:"amount_cents"`
}

type invoiceResponse struct {
	ID            string    `json:"id"`
	AppointmentID string    `json:"appointment_id"`
	AmountCents   int64     `json:"amount_cents"`
	IssuedBy      string    `json:"issued_by"`
	IssuedAt      time.Time `json:"issued_at"`
}

func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := appointments.ActorFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		inv, err := svc.Create(r.Context(), actor, chi.URLParam(r, "appointmentID"), CreateInput{
			AmountCents: req.AmountCents,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toResponse(inv))
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := appointments.ActorFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		inv, err := svc.GetByAppointment(r.Context(), actor, chi.URLParam(r, "appointmentID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(inv))
	}
}

func toResponse(inv Invoice) invoiceResponse {
	return invoiceResponse{
		ID:            inv.ID,
		AppointmentID: inv.AppointmentID,
		AmountCents:   inv.AmountCents,
		IssuedBy:      inv.IssuedBy,
		IssuedAt:      inv.IssuedAt,
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, appointments.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, appointments.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, appointments.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, appointments.ErrGuardViolation):
		http.Error(w, "appointment state does not allow invoicing", http.StatusForbidden)
	case errors.Is(err, appointments.ErrConflict):
		http.Error(w, "conflict", http.StatusConflict)
	case errors.Is(err, appointments.ErrTransient):
		http.Error(w, "storage temporarily unavailable", http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
