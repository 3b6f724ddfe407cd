package postgres

import (
	"context"
	"database/sql"

	"clinic-appointments/internal/domain/appointments"
	"clinic-appointments/internal/domain/invoices"
)

// Esquema esperado:
//
//	CREATE TABLE invoices (
//	    id             text PRIMARY KEY,
//	    appointment_id text NOT NULL UNIQUE REFERENCES appointments (id),
//	    amount_cents   bigint NOT NULL,
//	    issued_by      text NOT NULL,
//	    issued_at      timestamptz NOT NULL
//	);
type InvoicesRepo struct {
	db *sql.DB
}

func NewInvoicesRepo(db *sql.DB) *InvoicesRepo {
	return &InvoicesRepo{db: db}
}

func (r *InvoicesRepo) Create(ctx context.Context, inv invoices.Invoice) error {
	return retry(ctx, func(ctx context.Context) error {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO invoices (id, appointment_id, amount_cents, issued_by, issued_at)
			VALUES ($1,$2,$3,$4,$5)
		`,
			inv.ID,
			inv.AppointmentID,
			inv.AmountCents,
			inv.IssuedBy,
			inv.IssuedAt,
		)
		if err != nil && isUniqueViolation(err) {
			// Segunda factura para la misma cita.
			return appointments.ErrGuardViolation
		}
		return err
	})
}

func (r *InvoicesRepo) GetByAppointment(ctx context.Context, appointmentID string) (invoices.Invoice, error) {
	var inv invoices.Invoice
	err := retry(ctx, func(ctx context.Context) error {
		row := r.db.QueryRowContext(ctx, `
			SELECT id, appointment_id, amount_cents, issued_by, issued_at
			FROM invoices
			WHERE appointment_id = $1
		`, appointmentID)

		if err := row.Scan(
			&inv.ID,
			&inv.AppointmentID,
			&inv.AmountCents,
			&inv.IssuedBy,
			&inv.IssuedAt,
		); err != nil {
			if err == sql.ErrNoRows {
				return appointments.ErrNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return invoices.Invoice{}, err
	}
	return inv, nil
}
