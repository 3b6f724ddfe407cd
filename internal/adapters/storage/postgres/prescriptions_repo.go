package postgres

import (
	"context"
	"database/sql"

	"clinic-appointments/internal/domain/prescriptions"
)

// Esquema esperado:
//
//	CREATE TABLE prescriptions (
//	    id             text PRIMARY KEY,
//	    appointment_id text NOT NULL REFERENCES appointments (id),
//	    medication     text NOT NULL,
//	    dosage         text NOT NULL DEFAULT '',
//	    notes          text NOT NULL DEFAULT '',
//	    created_by     text NOT NULL,
//	    created_at     timestamptz NOT NULL
//	);
type PrescriptionsRepo struct {
	db *sql.DB
}

func NewPrescriptionsRepo(db *sql.DB) *PrescriptionsRepo {
	return &PrescriptionsRepo{db: db}
}

func (r *PrescriptionsRepo) Create(ctx context.Context, p prescriptions.Prescription) error {
	return retry(ctx, func(ctx context.Context) error {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO prescriptions (
				id, appointment_id, medication, dosage, notes,
				created_by, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7)
		`,
			p.ID,
			p.AppointmentID,
			p.Medication,
			p.Dosage,
			p.Notes,
			p.CreatedBy,
			p.CreatedAt,
		)
		return err
	})
}

func (r *PrescriptionsRepo) ListByAppointment(ctx context.Context, appointmentID string) ([]prescriptions.Prescription, error) {
	var out []prescriptions.Prescription
	err := retry(ctx, func(ctx context.Context) error {
		rows, err := r.db.QueryContext(ctx, `
			SELECT id, appointment_id, medication, dosage, notes, created_by, created_at
			FROM prescriptions
			WHERE appointment_id = $1
			ORDER BY created_at ASC
		`, appointmentID)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]prescriptions.Prescription, 0)
		for rows.Next() {
			var p prescriptions.Prescription
			if err := rows.Scan(
				&p.ID,
				&p.AppointmentID,
				&p.Medication,
				&p.Dosage,
				&p.Notes,
				&p.CreatedBy,
				&p.CreatedAt,
			); err != nil {
				return err
			}
			out = append(out, p)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
