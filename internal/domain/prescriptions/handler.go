package prescriptions

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"clinic-appointments/internal/domain/appointments"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/appointments/{appointmentID}/prescriptions", func(pr chi.Router) {
		pr.Post("/", createHandler(svc))
		pr.Get("/", listHandler(svc))
	})
}

type createRequest struct {
	Medication string `json:"medication"`
	Dosage     string `json:"dosage"`
	Notes      string `json:"notes"`
}

type prescriptionResponse struct {
	ID            string    `json:"id"`
	AppointmentID string    `json:"appointment_id"`
	Medication    string    `json:"medication"`
	Dosage        string    `json:"dosage"`
	Notes         string    `json:"notes"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
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

		p, err := svc.Create(r.Context(), actor, chi.URLParam(r, "appointmentID"), CreateInput{
			Medication: req.Medication,
			Dosage:     req.Dosage,
			Notes:      req.Notes,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toResponse(p))
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := appointments.ActorFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByAppointment(r.Context(), actor, chi.URLParam(r, "appointmentID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		out := make([]prescriptionResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toResponse(p Prescription) prescriptionResponse {
	return prescriptionResponse{
		ID:            p.ID,
		AppointmentID: p.AppointmentID,
		Medication:    p.Medication,
		Dosage:        p.Dosage,
		Notes:         p.Notes,
		CreatedBy:     p.CreatedBy,
		CreatedAt:     p.CreatedAt,
	}
}

// Mapea la taxonomía compartida del core de citas.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, appointments.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, appointments.ErrNotFound):
		http.Error(w, "appointment not found", http.StatusNotFound)
	case errors.Is(err, appointments.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, appointments.ErrGuardViolation):
		http.Error(w, "appointment state does not allow prescriptions", http.StatusForbidden)
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
