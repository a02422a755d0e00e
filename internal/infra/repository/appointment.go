package repository

import (
	"context"
	"time"

	"immoview/internal/domain/appointment"
	"immoview/internal/infra"
	"immoview/internal/infra/db"
	"immoview/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type AppointmentRepository struct{}

func NewAppointmentRepository() *AppointmentRepository {
	return &AppointmentRepository{}
}

const createAppointmentSQL = `
INSERT INTO appointments (
	id, property_id, buyer_id, owner_id, scheduled_at, duration, type, status,
	notes, buyer_notes, owner_notes, external_calendar_id, external_event_id,
	buyer_profile_snapshot, confirmed_at, cancelled_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
)
RETURNING id`

func (r *AppointmentRepository) Create(ctx context.Context, dbtx db.DBTX, appt *appointment.Appointment) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createAppointmentSQL,
		pgconv.UUIDToPgtype(appt.ID()),
		pgconv.UUIDToPgtype(appt.PropertyID()),
		pgconv.UUIDToPgtype(appt.BuyerID()),
		pgconv.UUIDToPgtype(appt.OwnerID()),
		pgconv.TimeToPgtype(appt.ScheduledAt()),
		appt.DurationMinutes(),
		appt.Type().String(),
		appt.Status().String(),
		pgconv.StringPtrToPgtype(appt.Notes()),
		pgconv.StringPtrToPgtype(appt.BuyerNotes()),
		pgconv.StringPtrToPgtype(appt.OwnerNotes()),
		pgconv.StringPtrToPgtype(appt.ExternalCalID()),
		pgconv.StringPtrToPgtype(appt.ExternalEventID()),
		appt.BuyerSnapshot(),
		pgconv.TimePtrToPgtype(appt.ConfirmedAt()),
		pgconv.TimePtrToPgtype(appt.CancelledAt()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapPgErr("failed to create appointment", err)
	}

	return id, nil
}

// LockConfirmedOverlapping locks the property's confirmed appointments whose
// interval intersects [start, end) and returns how many there are. Running
// this before the insert, inside the same transaction, is what keeps two
// concurrent bookings from both passing the conflict check.
const lockConfirmedOverlappingSQL = `
SELECT id
FROM appointments
WHERE property_id = $1
  AND status = 'confirmed'
  AND scheduled_at < $3
  AND scheduled_at + make_interval(mins => duration) > $2
FOR UPDATE`

func (r *AppointmentRepository) LockConfirmedOverlapping(ctx context.Context, dbtx db.DBTX, propertyID uuid.UUID, start, end time.Time) (int, error) {
	rows, err := dbtx.Query(ctx, lockConfirmedOverlappingSQL,
		pgconv.UUIDToPgtype(propertyID),
		pgconv.TimeToPgtype(start),
		pgconv.TimeToPgtype(end),
	)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to lock conflicting appointments", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		count++
	}
	if err := rows.Err(); err != nil {
		return 0, infra.WrapRepoErr("failed to read conflicting appointments", err)
	}

	return count, nil
}

const updateAppointmentStatusSQL = `
UPDATE appointments
SET status = $2,
    confirmed_at = $3,
    cancelled_at = $4,
    owner_notes = COALESCE($5, owner_notes),
    updated_at = now()
WHERE id = $1`

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, dbtx db.DBTX, appt *appointment.Appointment) error {
	tag, err := dbtx.Exec(ctx, updateAppointmentStatusSQL,
		pgconv.UUIDToPgtype(appt.ID()),
		appt.Status().String(),
		pgconv.TimePtrToPgtype(appt.ConfirmedAt()),
		pgconv.TimePtrToPgtype(appt.CancelledAt()),
		pgconv.StringPtrToPgtype(appt.OwnerNotes()),
	)
	if err != nil {
		return wrapPgErr("failed to update appointment status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}

	return nil
}

func (r *AppointmentRepository) SetBuyerNotes(ctx context.Context, dbtx db.DBTX, id uuid.UUID, notes *string) error {
	return r.setNotes(ctx, dbtx,
		`UPDATE appointments SET buyer_notes = $2, updated_at = now() WHERE id = $1`, id, notes)
}

func (r *AppointmentRepository) SetOwnerNotes(ctx context.Context, dbtx db.DBTX, id uuid.UUID, notes *string) error {
	return r.setNotes(ctx, dbtx,
		`UPDATE appointments SET owner_notes = $2, updated_at = now() WHERE id = $1`, id, notes)
}

func (r *AppointmentRepository) setNotes(ctx context.Context, dbtx db.DBTX, sql string, id uuid.UUID, notes *string) error {
	tag, err := dbtx.Exec(ctx, sql, pgconv.UUIDToPgtype(id), pgconv.StringPtrToPgtype(notes))
	if err != nil {
		return infra.WrapRepoErr("failed to update appointment notes", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}

	return nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, pgconv.UUIDToPgtype(id))
	if err != nil {
		return infra.WrapRepoErr("failed to delete appointment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}

	return nil
}
