package appointments

import "strings"

// Status es el estado canónico de una cita.
// El backend anterior mezclaba "scheduled" (lowercase) y "PENDING" (uppercase)
// para la misma entidad; acá el set canónico es el uppercase y "SCHEDULED"
// se acepta solo como alias de entrada de PENDING.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusInvoiced  Status = "INVOICED"
	StatusCancelled Status = "CANCELLED"
)

// ParseStatus normaliza entrada externa al set canónico.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PENDING", "SCHEDULED":
		return StatusPending, true
	case "CONFIRMED":
		return StatusConfirmed, true
	case "COMPLETED":
		return StatusCompleted, true
	case "INVOICED":
		return StatusInvoiced, true
	case "CANCELLED":
		return StatusCancelled, true
	default:
		return "", false
	}
}

// IsActive indica si la cita ocupa su slot (todo estado salvo CANCELLED).
func (s Status) IsActive() bool {
	return s != StatusCancelled
}

// IsTerminal: desde acá no hay más transiciones.
func (s Status) IsTerminal() bool {
	return s == StatusInvoiced || s == StatusCancelled
}

// Role es el set cerrado de roles del sistema.
type Role string

const (
	RoleOwner Role = "owner"
	RoleVet   Role = "vet"
	RoleAdmin Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "owner":
		return RoleOwner, true
	case "vet":
		return RoleVet, true
	case "admin":
		return RoleAdmin, true
	default:
		return "", false
	}
}

// IsStaff: vet y admin ven/gestionan citas de cualquier owner.
func (r Role) IsStaff() bool {
	return r == RoleVet || r == RoleAdmin
}

// Actor es quien ejecuta la acción. Rol único e inmutable por request.
type Actor struct {
	ID   string
	Role Role
}
