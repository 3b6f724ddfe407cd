package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"clinic-appointments/internal/domain/appointments"
	"clinic-appointments/internal/domain/notifications"
)

// Esquema esperado:
//
//	CREATE TABLE notifications (
//	    id             text PRIMARY KEY,
//	    type           text NOT NULL,
//	    appointment_id text NOT NULL,
//	    owner_user_id  text NOT NULL,
//	    pet_id         text NOT NULL,
//	    changes        jsonb NOT NULL DEFAULT '[]',
//	    message        text NOT NULL,
//	    created_at     timestamptz NOT NULL
//	);
type NotificationsRepo struct {
	db *sql.DB
}

func NewNotificationsRepo(db *sql.DB) *NotificationsRepo {
	return &NotificationsRepo{db: db}
}

func (r *NotificationsRepo) Create(ctx context.Context, n notifications.Notification) error {
	changes, err := json.Marshal(n.Changes)
	if err != nil {
		return err
	}

	return retry(ctx, func(ctx context.Context) error {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO notifications (
				id, type, appointment_id, owner_user_id, pet_id,
				changes, message, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		`,
			n.ID,
			n.Type,
			n.AppointmentID,
			n.OwnerUserID,
			n.PetID,
			changes,
			n.Message,
			n.CreatedAt,
		)
		return err
	})
}

func (r *NotificationsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]notifications.Notification, error) {
	var out []notifications.Notification
	err := retry(ctx, func(ctx context.Context) error {
		rows, err := r.db.QueryContext(ctx, `
			SELECT id, type, appointment_id, owner_user_id, pet_id, changes, message, created_at
			FROM notifications
			WHERE owner_user_id = $1
			ORDER BY created_at DESC
		`, ownerUserID)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]notifications.Notification, 0)
		for rows.Next() {
			var n notifications.Notification
			var raw []byte
			if err := rows.Scan(
				&n.ID,
				&n.Type,
				&n.AppointmentID,
				&n.OwnerUserID,
				&n.PetID,
				&raw,
				&n.Message,
				&n.CreatedAt,
			); err != nil {
				return err
			}
			if len(raw) > 0 {
				var changes []appointments.FieldChange
				if err := json.Unmarshal(raw, &changes); err == nil {
					n.Changes = changes
				}
			}
			out = append(out, n)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
