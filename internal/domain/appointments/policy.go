package appointments

// Política de autorización para acciones que no son transiciones.
// Las transiciones llevan sus roles en la tabla (lifecycle.go).

type Action string

const (
	ActionRead         Action = "read"
	ActionReschedule   Action = "reschedule"
	ActionSetDiagnosis Action = "set_diagnosis"
	ActionDelete       Action = "delete"
)

// authorize devuelve nil o un *DeniedError con razón estable.
// Scope de lectura/escritura del owner: solo registros propios.
func authorize(actor Actor, action Action, a Appointment) error {
	switch action {
	case ActionRead:
		if actor.Role.IsStaff() {
			return nil
		}
		if a.OwnerUserID != actor.ID {
			return denied(DenyNotOwner)
		}
		return nil

	case ActionReschedule:
		if actor.Role == RoleOwner && a.OwnerUserID != actor.ID {
			return denied(DenyNotOwner)
		}
		// Reprogramar solo tiene sentido mientras la cita sigue viva.
		if a.Status.IsTerminal() || a.Status == StatusCompleted {
			return denied(DenyRecordLocked)
		}
		return nil

	case ActionSetDiagnosis:
		// Solo staff escribe diagnosis, y recién desde COMPLETED.
		if !actor.Role.IsStaff() {
			return denied(DenyRoleNotPermitted)
		}
		if a.Status != StatusCompleted && a.Status != StatusInvoiced {
			return denied(DenyRecordLocked)
		}
		return nil

	case ActionDelete:
		// Borrado físico administrativo, fuera del state machine.
		if actor.Role != RoleAdmin {
			return denied(DenyRoleNotPermitted)
		}
		return nil

	default:
		return denied(DenyRoleNotPermitted)
	}
}
