package appointments

import (
	"errors"
	"fmt"
)

// Taxonomía de errores del core. Los handlers los mapean a HTTP
// (400/403/404/409/503) sin filtrar detalles internos.
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("appointment not found")
	ErrForbidden      = errors.New("forbidden")
	ErrGuardViolation = errors.New("transition not allowed")
	ErrConflict       = errors.New("double booking detected")
	// ErrTransient: el backing store no respondió; el caller puede reintentar.
	// Distinto de las fallas de negocio a propósito.
	ErrTransient = errors.New("storage temporarily unavailable")

	// ErrVersionConflict lo devuelven los repos cuando el registro cambió
	// desde el load. El service lo reintenta acotado y recién ahí lo
	// expone como ErrConflict.
	ErrVersionConflict = errors.New("version conflict")
)

// DenyReason es el código estable que acompaña a un deny de autorización.
type DenyReason string

const (
	DenyNotOwner         DenyReason = "NotOwner"
	DenyRoleNotPermitted DenyReason = "RoleNotPermitted"
	DenyRecordLocked     DenyReason = "RecordLocked"
)

// DeniedError envuelve ErrForbidden con la razón estable; nunca arrastra
// errores internos crudos hacia el boundary.
type DeniedError struct {
	Reason DenyReason
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("forbidden: %s", e.Reason)
}

func (e *DeniedError) Unwrap() error {
	return ErrForbidden
}

func denied(reason DenyReason) error {
	return &DeniedError{Reason: reason}
}
