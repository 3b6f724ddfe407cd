package appointments

// Motor de transiciones, dirigido por tabla.
//
//	PENDING -> CONFIRMED            vet, admin
//	PENDING -> CANCELLED            owner (propia), vet, admin
//	CONFIRMED -> CANCELLED          owner (propia), vet, admin
//	CONFIRMED -> COMPLETED          vet, admin
//	COMPLETED -> INVOICED           admin
//
// Cualquier par (from, to) fuera de la tabla es GuardViolation,
// incluida la re-aplicación de una transición ya hecha (no hay no-op
// silencioso). El owner jamás llega a COMPLETED ni INVOICED.

type transition struct {
	from  Status
	to    Status
	roles []Role
	// guard corre además del chequeo de rol; dentro del lock.
	guard func(a Appointment) error
}

var transitionTable = []transition{
	{
		from:  StatusPending,
		to:    StatusConfirmed,
		roles: []Role{RoleVet, RoleAdmin},
	},
	{
		from:  StatusPending,
		to:    StatusCancelled,
		roles: []Role{RoleOwner, RoleVet, RoleAdmin},
		guard: notPastCompletion,
	},
	{
		from:  StatusConfirmed,
		to:    StatusCancelled,
		roles: []Role{RoleOwner, RoleVet, RoleAdmin},
		guard: notPastCompletion,
	},
	{
		from:  StatusConfirmed,
		to:    StatusCompleted,
		roles: []Role{RoleVet, RoleAdmin},
		guard: notCancelled,
	},
	{
		from:  StatusCompleted,
		to:    StatusInvoiced,
		roles: []Role{RoleAdmin},
	},
}

func notPastCompletion(a Appointment) error {
	if a.Status == StatusCompleted || a.Status == StatusInvoiced {
		return ErrGuardViolation
	}
	return nil
}

func notCancelled(a Appointment) error {
	if a.Status == StatusCancelled {
		return ErrGuardViolation
	}
	return nil
}

// validateTransition chequea tabla + rol + guard contra el estado persistido.
// No muta nada; el service aplica el cambio recién si esto pasa.
func validateTransition(a Appointment, to Status, actor Actor) error {
	// El owner nunca puede llevar una cita a COMPLETED/INVOICED,
	// sin importar qué diga la tabla.
	if actor.Role == RoleOwner && (to == StatusCompleted || to == StatusInvoiced) {
		return denied(DenyRoleNotPermitted)
	}

	t, ok := findTransition(a.Status, to)
	if !ok {
		return ErrGuardViolation
	}

	if !roleAllowed(t.roles, actor.Role) {
		return denied(DenyRoleNotPermitted)
	}
	// Scope del owner: solo sus propias citas.
	if actor.Role == RoleOwner && a.OwnerUserID != actor.ID {
		return denied(DenyNotOwner)
	}

	if t.guard != nil {
		if err := t.guard(a); err != nil {
			return err
		}
	}
	return nil
}

func findTransition(from, to Status) (transition, bool) {
	for _, t := range transitionTable {
		if t.from == from && t.to == to {
			return t, true
		}
	}
	return transition{}, false
}

func roleAllowed(roles []Role, r Role) bool {
	for _, allowed := range roles {
		if allowed == r {
			return true
		}
	}
	return false
}
