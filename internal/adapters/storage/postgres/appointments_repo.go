package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"clinic-appointments/internal/domain/appointments"
)

// Esquema esperado:
//
//	CREATE TABLE appointments (
//	    id            text PRIMARY KEY,
//	    pet_id        text NOT NULL,
//	    owner_user_id text NOT NULL,
//	    date          text NOT NULL, -- YYYY-MM-DD
//	    time_slot     text NOT NULL, -- HH:MM
//	    reason        text NOT NULL DEFAULT '',
//	    diagnosis     text NOT NULL DEFAULT '',
//	    status        text NOT NULL,
//	    version       bigint NOT NULL,
//	    created_at    timestamptz NOT NULL,
//	    updated_at    timestamptz NOT NULL
//	);
//	-- respaldo duro del invariante de slot: solo citas activas compiten
//	CREATE UNIQUE INDEX uq_appointments_active_slot
//	    ON appointments (pet_id, date, time_slot)
//	    WHERE status <> 'CANCELLED';
type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

const appointmentColumns = `
	id, pet_id, owner_user_id,
	date, time_slot, reason, diagnosis,
	status, version, created_at, updated_at`

func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	return retry(ctx, func(ctx context.Context) error {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO appointments (`+appointmentColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		`,
			a.ID,
			a.PetID,
			a.OwnerUserID,
			a.Date,
			a.TimeSlot,
			a.Reason,
			a.Diagnosis,
			a.Status,
			a.Version,
			a.CreatedAt,
			a.UpdatedAt,
		)
		if err != nil && isUniqueViolation(err) {
			// El índice parcial atrapa la carrera que el chequeo advisory no vio.
			return appointments.ErrConflict
		}
		return err
	})
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return appointments.Appointment{}, appointments.ErrNotFound
	}

	var a appointments.Appointment
	err := retry(ctx, func(ctx context.Context) error {
		row := r.db.QueryRowContext(ctx, `
			SELECT `+appointmentColumns+`
			FROM appointments
			WHERE id = $1
		`, id)

		if err := scanAppointment(row, &a); err != nil {
			if err == sql.ErrNoRows {
				return appointments.ErrNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return appointments.Appointment{}, err
	}
	return a, nil
}

func (r *AppointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	return retry(ctx, func(ctx context.Context) error {
		res, err := r.db.ExecContext(ctx, `
			UPDATE appointments
			SET
				pet_id = $3,
				owner_user_id = $4,
				date = $5,
				time_slot = $6,
				reason = $7,
				diagnosis = $8,
				status = $9,
				version = version + 1,
				updated_at = $10
			WHERE id = $1 AND version = $2
		`,
			a.ID,
			a.Version,
			a.PetID,
			a.OwnerUserID,
			a.Date,
			a.TimeSlot,
			a.Reason,
			a.Diagnosis,
			a.Status,
			a.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return appointments.ErrConflict
			}
			return err
		}

		n, _ := res.RowsAffected()
		if n > 0 {
			return nil
		}

		// 0 filas: o no existe, o perdió la carrera optimista.
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM appointments WHERE id = $1)`, a.ID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return appointments.ErrNotFound
		}
		return appointments.ErrVersionConflict
	})
}

func (r *AppointmentsRepo) Delete(ctx context.Context, id string) error {
	return retry(ctx, func(ctx context.Context) error {
		res, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
		if err != nil {
			return err
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			return appointments.ErrNotFound
		}
		return nil
	})
}

func (r *AppointmentsRepo) List(ctx context.Context, f appointments.ListFilter) ([]appointments.Appointment, error) {
	where := make([]string, 0, 6)
	args := make([]any, 0, 6)

	add := func(cond string, val any) {
		args = append(args, val)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if f.OwnerUserID != "" {
		add("owner_user_id = $%d", f.OwnerUserID)
	}
	if f.PetID != "" {
		add("pet_id = $%d", f.PetID)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.Date != "" {
		add("date = $%d", f.Date)
	}
	if f.FromDate != "" {
		add("date >= $%d", f.FromDate)
	}
	if f.ToDate != "" {
		add("date <= $%d", f.ToDate)
	}

	query := `SELECT ` + appointmentColumns + ` FROM appointments`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date ASC, time_slot ASC"

	var out []appointments.Appointment
	err := retry(ctx, func(ctx context.Context) error {
		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]appointments.Appointment, 0)
		for rows.Next() {
			var a appointments.Appointment
			if err := scanAppointment(rows, &a); err != nil {
				return err
			}
			out = append(out, a)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AppointmentsRepo) FindActiveBySlot(ctx context.Context, petID, date, timeSlot, excludeID string) (bool, error) {
	var exists bool
	err := retry(ctx, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM appointments
				WHERE pet_id = $1
				  AND date = $2
				  AND time_slot = $3
				  AND status <> 'CANCELLED'
				  AND ($4 = '' OR id <> $4)
			)
		`, petID, date, timeSlot, excludeID).Scan(&exists)
	})
	if err != nil {
		return false, err
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row rowScanner, a *appointments.Appointment) error {
	return row.Scan(
		&a.ID,
		&a.PetID,
		&a.OwnerUserID,
		&a.Date,
		&a.TimeSlot,
		&a.Reason,
		&a.Diagnosis,
		&a.Status,
		&a.Version,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
}
