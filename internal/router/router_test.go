package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// Test caja negra: levanta el router completo en modo dev (sin verifier,
// repos in-memory) y recorre el ciclo de vida entero de una cita.

func doJSON(t *testing.T, h http.Handler, method, path, userID, role string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if userID != "" {
		req.Header.Set("X-Debug-User-ID", userID)
	}
	if role != "" {
		req.Header.Set("X-Debug-Role", role)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response: %v (body=%s)", err, rec.Body.String())
	}
}

func TestRouter_FullAppointmentLifecycle(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("NOTIFY_WEBHOOK_URL", "")

	h := NewRouter(Options{})

	// Sin claims => 401 en endpoints protegidos, pero /health abierto.
	if rec := doJSON(t, h, http.MethodGet, "/health", "", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("health: got %d", rec.Code)
	}
	if rec := doJSON(t, h, http.MethodGet, "/appointments", "", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated list: got %d, want 401", rec.Code)
	}

	// El dueño agenda a su nombre.
	rec := doJSON(t, h, http.MethodPost, "/appointments", "owner-1", "owner", map[string]any{
		"pet_id": "pet-1",
		"date":   "2026-09-10",
		"time":   "10:00",
		"reason": "annual checkup",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: got %d (body=%s)", rec.Code, rec.Body.String())
	}

	var created struct {
		ID          string `json:"id"`
		OwnerUserID string `json:"owner_user_id"`
		Status      string `json:"status"`
	}
	decodeInto(t, rec, &created)
	if created.Status != "PENDING" {
		t.Fatalf("create: status = %s, want PENDING", created.Status)
	}
	if created.OwnerUserID != "owner-1" {
		t.Fatalf("create: owner = %s, want owner-1", created.OwnerUserID)
	}
	id := created.ID

	// Mismo slot para la misma mascota => 409.
	rec = doJSON(t, h, http.MethodPost, "/appointments", "owner-1", "owner", map[string]any{
		"pet_id": "pet-1",
		"date":   "2026-09-10",
		"time":   "10:00",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate slot: got %d, want 409", rec.Code)
	}

	// Otro dueño no ve la cita ajena.
	if rec = doJSON(t, h, http.MethodGet, "/appointments/"+id, "owner-2", "owner", nil); rec.Code != http.StatusForbidden {
		t.Fatalf("foreign get: got %d, want 403", rec.Code)
	}

	// El dueño no puede completar, nunca.
	if rec = doJSON(t, h, http.MethodPost, "/appointments/"+id+"/complete", "owner-1", "owner", nil); rec.Code != http.StatusForbidden {
		t.Fatalf("owner complete: got %d, want 403", rec.Code)
	}

	// Vet confirma, vet completa.
	rec = doJSON(t, h, http.MethodPost, "/appointments/"+id+"/confirm", "vet-1", "vet", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm: got %d (body=%s)", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, h, http.MethodPost, "/appointments/"+id+"/complete", "vet-1", "vet", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("complete: got %d (body=%s)", rec.Code, rec.Body.String())
	}

	// Cancelar una cita completada viola la tabla de transiciones.
	if rec = doJSON(t, h, http.MethodPost, "/appointments/"+id+"/cancel", "owner-1", "owner", nil); rec.Code != http.StatusForbidden {
		t.Fatalf("cancel after complete: got %d, want 403", rec.Code)
	}

	// Vet adjunta receta sobre la cita completada; el dueño la puede leer.
	rec = doJSON(t, h, http.MethodPost, "/appointments/"+id+"/prescriptions", "vet-1", "vet", map[string]any{
		"medication": "amoxicillin",
		"dosage":     "50mg twice a day",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("prescription: got %d (body=%s)", rec.Code, rec.Body.String())
	}
	if rec = doJSON(t, h, http.MethodGet, "/appointments/"+id+"/prescriptions", "owner-1", "owner", nil); rec.Code != http.StatusOK {
		t.Fatalf("owner list prescriptions: got %d", rec.Code)
	}

	// Solo admin factura; la cita queda INVOICED y no se factura dos veces.
	if rec = doJSON(t, h, http.MethodPost, "/appointments/"+id+"/invoice", "vet-1", "vet", map[string]any{"amount_cents": 4500}); rec.Code != http.StatusForbidden {
		t.Fatalf("vet invoice: got %d, want 403", rec.Code)
	}
	rec = doJSON(t, h, http.MethodPost, "/appointments/"+id+"/invoice", "admin-1", "admin", map[string]any{"amount_cents": 4500})
	if rec.Code != http.StatusCreated {
		t.Fatalf("invoice: got %d (body=%s)", rec.Code, rec.Body.String())
	}

	var after struct {
		Status string `json:"status"`
	}
	rec = doJSON(t, h, http.MethodGet, "/appointments/"+id, "admin-1", "admin", nil)
	decodeInto(t, rec, &after)
	if after.Status != "INVOICED" {
		t.Fatalf("after invoice: status = %s, want INVOICED", after.Status)
	}

	if rec = doJSON(t, h, http.MethodPost, "/appointments/"+id+"/invoice", "admin-1", "admin", map[string]any{"amount_cents": 4500}); rec.Code != http.StatusForbidden {
		t.Fatalf("second invoice: got %d, want 403", rec.Code)
	}

	// Las notificaciones llegan por el bus (async): poll con deadline.
	// created + confirm + complete + invoice = 4 eventos para owner-1.
	var notifs []struct {
		AppointmentID string `json:"appointment_id"`
		Message       string `json:"message"`
	}
	deadline := time.Now().Add(2 * time.Second)
	for {
		rec = doJSON(t, h, http.MethodGet, "/me/notifications", "owner-1", "owner", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("notifications: got %d", rec.Code)
		}
		notifs = notifs[:0]
		decodeInto(t, rec, &notifs)
		if len(notifs) >= 4 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("notifications: got %d after deadline, want 4", len(notifs))
		}
		time.Sleep(10 * time.Millisecond)
	}
	for _, n := range notifs {
		if n.AppointmentID != id {
			t.Fatalf("notification for unexpected appointment %s", n.AppointmentID)
		}
	}

	// Otro dueño no recibe notificaciones ajenas.
	rec = doJSON(t, h, http.MethodGet, "/me/notifications", "owner-2", "owner", nil)
	var foreign []json.RawMessage
	decodeInto(t, rec, &foreign)
	if len(foreign) != 0 {
		t.Fatalf("foreign notifications: got %d, want 0", len(foreign))
	}
}

func TestRouter_SummaryScopedByRole(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("NOTIFY_WEBHOOK_URL", "")

	h := NewRouter(Options{})

	rec := doJSON(t, h, http.MethodPost, "/appointments", "admin-1", "admin", map[string]any{
		"pet_id":        "pet-9",
		"owner_user_id": "owner-9",
		"date":          "2026-09-11",
		"time":          "09:30",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: got %d (body=%s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodGet, "/appointments/summary?from=2026-09-11&to=2026-09-11", "vet-1", "vet", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("vet summary: got %d", rec.Code)
	}

	var days []struct {
		Date    string `json:"date"`
		Total   int    `json:"total"`
		Pending int    `json:"pending"`
	}
	decodeInto(t, rec, &days)
	if len(days) != 1 || days[0].Date != "2026-09-11" || days[0].Total != 1 || days[0].Pending != 1 {
		t.Fatalf("summary mismatch: %+v", days)
	}

	// Un dueño ajeno ve el rango, pero solo sus propias citas (acá: ninguna).
	rec = doJSON(t, h, http.MethodGet, "/appointments/summary?from=2026-09-11&to=2026-09-11", "owner-other", "owner", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner summary: got %d", rec.Code)
	}
	decodeInto(t, rec, &days)
	if len(days) != 1 || days[0].Total != 0 {
		t.Fatalf("foreign owner summary not scoped: %+v", days)
	}
}

func TestRouter_RescheduleConflict(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("NOTIFY_WEBHOOK_URL", "")

	h := NewRouter(Options{})

	mk := func(slot string) string {
		rec := doJSON(t, h, http.MethodPost, "/appointments", "owner-1", "owner", map[string]any{
			"pet_id": "pet-1",
			"date":   "2026-09-12",
			"time":   slot,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %s: got %d (body=%s)", slot, rec.Code, rec.Body.String())
		}
		var out struct {
			ID string `json:"id"`
		}
		decodeInto(t, rec, &out)
		return out.ID
	}

	mk("10:00")
	second := mk("11:00")

	// Mover la segunda cita encima de la primera => 409.
	rec := doJSON(t, h, http.MethodPatch, "/appointments/"+second, "owner-1", "owner", map[string]any{"time": "10:00"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("reschedule onto busy slot: got %d, want 409", rec.Code)
	}

	// Moverla a un slot libre funciona.
	rec = doJSON(t, h, http.MethodPatch, "/appointments/"+second, "owner-1", "owner", map[string]any{"time": "12:00"})
	if rec.Code != http.StatusOK {
		t.Fatalf("reschedule to free slot: got %d (body=%s)", rec.Code, rec.Body.String())
	}
}
