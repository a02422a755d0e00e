package readstore

import (
	"context"
	"time"

	"immoview/internal/infra"
	"immoview/internal/infra/db"
	"immoview/internal/pkg/pgconv"
	"immoview/internal/usecase/queries"
	"immoview/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type AppointmentReadStore struct {
	db db.DBTX
}

func NewAppointmentReadStore(dbtx db.DBTX) *AppointmentReadStore {
	return &AppointmentReadStore{db: dbtx}
}

const appointmentColumns = `
	a.id, a.property_id, p.title, a.buyer_id, a.owner_id, a.scheduled_at,
	a.duration, a.type, a.status, a.notes, a.buyer_notes, a.owner_notes,
	a.external_calendar_id, a.external_event_id, a.buyer_profile_snapshot,
	a.confirmed_at, a.cancelled_at, a.created_at, a.updated_at`

const appointmentFrom = `
FROM appointments a
JOIN properties p ON p.id = a.property_id`

func (r *AppointmentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AppointmentView, error) {
	row := r.db.QueryRow(ctx,
		`SELECT`+appointmentColumns+appointmentFrom+` WHERE a.id = $1`,
		pgconv.UUIDToPgtype(id))

	view, err := scanAppointmentView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find appointment", err)
	}

	return view, nil
}

// Buyer and owner listings run newest first, the property listing oldest
// first. The clients consuming them want different things: people check
// their upcoming bookings, property pages show the day's schedule.

func (r *AppointmentReadStore) FindByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*queries.AppointmentView, error) {
	return r.list(ctx,
		`SELECT`+appointmentColumns+appointmentFrom+` WHERE a.buyer_id = $1 ORDER BY a.scheduled_at DESC`,
		buyerID)
}

func (r *AppointmentReadStore) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*queries.AppointmentView, error) {
	return r.list(ctx,
		`SELECT`+appointmentColumns+appointmentFrom+` WHERE a.owner_id = $1 ORDER BY a.scheduled_at DESC`,
		ownerID)
}

func (r *AppointmentReadStore) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]*queries.AppointmentView, error) {
	return r.list(ctx,
		`SELECT`+appointmentColumns+appointmentFrom+` WHERE a.property_id = $1 ORDER BY a.scheduled_at ASC`,
		propertyID)
}

func (r *AppointmentReadStore) list(ctx context.Context, sql string, id uuid.UUID) ([]*queries.AppointmentView, error) {
	rows, err := r.db.Query(ctx, sql, pgconv.UUIDToPgtype(id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list appointments", err)
	}
	defer rows.Close()

	views := []*queries.AppointmentView{}
	for rows.Next() {
		view, err := scanAppointmentView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan appointment", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read appointments", err)
	}

	return views, nil
}

func (r *AppointmentReadStore) FindBlockingByOwnerOnDate(ctx context.Context, ownerID uuid.UUID, date time.Time) ([]*queries.BlockingAppointment, error) {
	return r.blocking(ctx,
		`SELECT scheduled_at, duration FROM appointments
		 WHERE owner_id = $1
		   AND scheduled_at >= $2 AND scheduled_at < $3
		   AND status IN ('requested', 'confirmed')`,
		ownerID, date)
}

func (r *AppointmentReadStore) FindConfirmedByPropertyOnDate(ctx context.Context, propertyID uuid.UUID, date time.Time) ([]*queries.BlockingAppointment, error) {
	return r.blocking(ctx,
		`SELECT scheduled_at, duration FROM appointments
		 WHERE property_id = $1
		   AND scheduled_at >= $2 AND scheduled_at < $3
		   AND status = 'confirmed'`,
		propertyID, date)
}

func (r *AppointmentReadStore) blocking(ctx context.Context, sql string, id uuid.UUID, date time.Time) ([]*queries.BlockingAppointment, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	rows, err := r.db.Query(ctx, sql,
		pgconv.UUIDToPgtype(id), pgconv.TimeToPgtype(dayStart), pgconv.TimeToPgtype(dayEnd))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find blocking appointments", err)
	}
	defer rows.Close()

	blocks := []*queries.BlockingAppointment{}
	for rows.Next() {
		var (
			scheduledAt pgtype.Timestamptz
			duration    int32
		)
		if err := rows.Scan(&scheduledAt, &duration); err != nil {
			return nil, infra.WrapRepoErr("failed to scan blocking appointment", err)
		}
		blocks = append(blocks, &queries.BlockingAppointment{
			ScheduledAt:     pgconv.TimeFromPgtype(scheduledAt),
			DurationMinutes: int(duration),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read blocking appointments", err)
	}

	return blocks, nil
}

// FindSnapshotByID is the command-side read used for status, notes and
// delete authorization checks.
func (r *AppointmentReadStore) FindSnapshotByID(ctx context.Context, id uuid.UUID) (*shared.AppointmentSnapshot, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, property_id, buyer_id, owner_id, scheduled_at, duration, status, confirmed_at, cancelled_at
		 FROM appointments WHERE id = $1`,
		pgconv.UUIDToPgtype(id))

	var (
		snap        shared.AppointmentSnapshot
		scheduledAt pgtype.Timestamptz
		duration    int32
		confirmedAt pgtype.Timestamptz
		cancelledAt pgtype.Timestamptz
	)
	err := row.Scan(&snap.ID, &snap.PropertyID, &snap.BuyerID, &snap.OwnerID, &scheduledAt, &duration, &snap.Status,
		&confirmedAt, &cancelledAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find appointment", err)
	}

	snap.ScheduledAt = pgconv.TimeFromPgtype(scheduledAt)
	snap.DurationMinutes = int(duration)
	snap.ConfirmedAt = pgconv.TimePtrFromPgtype(confirmedAt)
	snap.CancelledAt = pgconv.TimePtrFromPgtype(cancelledAt)
	return &snap, nil
}

func scanAppointmentView(row pgx.Row) (*queries.AppointmentView, error) {
	var (
		view        queries.AppointmentView
		scheduledAt pgtype.Timestamptz
		duration    int32
		notes       pgtype.Text
		buyerNotes  pgtype.Text
		ownerNotes  pgtype.Text
		externalCal pgtype.Text
		externalEv  pgtype.Text
		snapshot    []byte
		confirmedAt pgtype.Timestamptz
		cancelledAt pgtype.Timestamptz
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)
	err := row.Scan(
		&view.ID, &view.PropertyID, &view.PropertyTitle, &view.BuyerID, &view.OwnerID, &scheduledAt,
		&duration, &view.Type, &view.Status, &notes, &buyerNotes, &ownerNotes,
		&externalCal, &externalEv, &snapshot,
		&confirmedAt, &cancelledAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.ScheduledAt = pgconv.TimeFromPgtype(scheduledAt)
	view.DurationMinutes = int(duration)
	view.Notes = pgconv.StringPtrFromPgtype(notes)
	view.BuyerNotes = pgconv.StringPtrFromPgtype(buyerNotes)
	view.OwnerNotes = pgconv.StringPtrFromPgtype(ownerNotes)
	view.ExternalCalendarID = pgconv.StringPtrFromPgtype(externalCal)
	view.ExternalEventID = pgconv.StringPtrFromPgtype(externalEv)
	view.BuyerProfileSnapshot = snapshot
	view.ConfirmedAt = pgconv.TimePtrFromPgtype(confirmedAt)
	view.CancelledAt = pgconv.TimePtrFromPgtype(cancelledAt)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}
