package appointments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"clinic-appointments/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Post("/", createHandler(svc))
		ar.Get("/", listHandler(svc))
		ar.Get("/summary", summaryHandler(svc))

		ar.Get("/{appointmentID}", getHandler(svc))
		ar.Patch("/{appointmentID}", updateHandler(svc))
		ar.Delete("/{appointmentID}", deleteHandler(svc))

		// Un endpoint por fila de la tabla de transiciones.
		ar.Post("/{appointmentID}/confirm", transitionHandler(svc, StatusConfirmed))
		ar.Post("/{appointmentID}/cancel", transitionHandler(svc, StatusCancelled))
		ar.Post("/{appointmentID}/complete", transitionHandler(svc, StatusCompleted))
	})
}

// ActorFromContext arma el Actor desde los claims del middleware.
// Lo usan también los handlers de prescriptions/invoices/notifications.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	claims, ok := middleware.GetClaims(ctx)
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		return Actor{}, false
	}
	role, ok := ParseRole(claims.Role)
	if !ok {
		return Actor{}, false
	}
	return Actor{ID: claims.UserID, Role: role}, true
}

type createRequest struct {
	PetID       string `json:"pet_id"`
	OwnerUserID string `json:"owner_user_id"` // solo staff; el owner crea a su nombre
	Date        string `json:"date"`          // YYYY-MM-DD
	Time        string `json:"time"`          // HH:MM
	Reason      string `json:"reason"`
}

type updateRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Date      *string `json:"date"`
	Time      *string `json:"time"`
	Reason    *string `json:"reason"`
	Diagnosis *string `json:"diagnosis"`
}

type appointmentResponse struct {
	ID          string    `json:"id"`
	PetID       string    `json:"pet_id"`
	OwnerUserID string    `json:"owner_user_id"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Reason      string    `json:"reason"`
	Diagnosis   string    `json:"diagnosis,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), actor, CreateInput{
			PetID:       req.PetID,
			OwnerUserID: req.OwnerUserID,
			Date:        req.Date,
			TimeSlot:    req.Time,
			Reason:      req.Reason,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toResponse(a))
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		f := ListFilter{
			PetID: strings.TrimSpace(r.URL.Query().Get("pet_id")),
			Date:  strings.TrimSpace(r.URL.Query().Get("date")),
		}
		if raw := r.URL.Query().Get("status"); strings.TrimSpace(raw) != "" {
			st, ok := ParseStatus(raw)
			if !ok {
				http.Error(w, "unknown status", http.StatusBadRequest)
				return
			}
			f.Status = st
		}

		items, err := svc.List(r.Context(), actor, f)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		out := make([]appointmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func summaryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		out, err := svc.Summary(r.Context(), actor, r.URL.Query().Get("from"), r.URL.Query().Get("to"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a, err := svc.GetByID(r.Context(), actor, chi.URLParam(r, "appointmentID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(a))
	}
}

func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Update(r.Context(), actor, chi.URLParam(r, "appointmentID"), UpdateInput{
			Date:      req.Date,
			TimeSlot:  req.Time,
			Reason:    req.Reason,
			Diagnosis: req.Diagnosis,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(a))
	}
}

func deleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), actor, chi.URLParam(r, "appointmentID")); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "appointment deleted"})
	}
}

func transitionHandler(svc *Service, to Status) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a, err := svc.Transition(r.Context(), actor, chi.URLParam(r, "appointmentID"), to)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(a))
	}
}

func toResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:          a.ID,
		PetID:       a.PetID,
		OwnerUserID: a.OwnerUserID,
		Date:        a.Date,
		Time:        a.TimeSlot,
		Reason:      a.Reason,
		Diagnosis:   a.Diagnosis,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// writeDomainError mapea la taxonomía del core a HTTP sin filtrar internals.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "appointment not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		var d *DeniedError
		if errors.As(err, &d) {
			http.Error(w, string(d.Reason), http.StatusForbidden)
			return
		}
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrGuardViolation):
		http.Error(w, "transition not allowed", http.StatusForbidden)
	case errors.Is(err, ErrConflict):
		http.Error(w, "double booking detected", http.StatusConflict)
	case errors.Is(err, ErrTransient):
		http.Error(w, "storage temporarily unavailable", http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
