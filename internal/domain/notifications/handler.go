package notifications

import (
	"encoding/json"
	"net/http"
	"time"

	"clinic-appointments/internal/domain/appointments"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/me/notifications", listMineHandler(svc))
}

type notificationResponse struct {
	ID            string                     `json:"id"`
	Type          string                     `json:"type"`
	AppointmentID string                     `json:"appointment_id"`
	PetID         string                     `json:"pet_id"`
	Changes       []appointments.FieldChange `json:"changes,omitempty"`
	Message       string                     `json:"message"`
	CreatedAt     time.Time                  `json:"created_at"`
}

func listMineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := appointments.ActorFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), actor.ID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]notificationResponse, 0, len(items))
		for _, n := range items {
			out = append(out, notificationResponse{
				ID:            n.ID,
				Type:          n.Type,
				AppointmentID: n.AppointmentID,
				PetID:         n.PetID,
				Changes:       n.Changes,
				Message:       n.Message,
				CreatedAt:     n.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
