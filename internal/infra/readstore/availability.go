package readstore

import (
	"context"
	"time"

	"immoview/internal/domain/scheduling"
	"immoview/internal/infra"
	"immoview/internal/infra/db"
	"immoview/internal/pkg/pgconv"
	"immoview/internal/usecase/queries"
	"immoview/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type WindowReadStore struct {
	db db.DBTX
}

func NewWindowReadStore(dbtx db.DBTX) *WindowReadStore {
	return &WindowReadStore{db: dbtx}
}

const windowColumns = `
	id, owner_id, date, start_time, end_time, slot_duration,
	is_active, timezone, notes, created_at, updated_at`

const findWindowsByOwnerSQL = `
SELECT` + windowColumns + `
FROM owner_availability_windows
WHERE owner_id = $1
ORDER BY date, start_time`

const findWindowsByOwnerInRangeSQL = `
SELECT` + windowColumns + `
FROM owner_availability_windows
WHERE owner_id = $1 AND date >= $2 AND date <= $3
ORDER BY date, start_time`

func (r *WindowReadStore) FindByOwner(ctx context.Context, ownerID uuid.UUID, from, to *time.Time) ([]*queries.WindowView, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if from != nil && to != nil {
		rows, err = r.db.Query(ctx, findWindowsByOwnerInRangeSQL,
			pgconv.UUIDToPgtype(ownerID), pgconv.DateToPgtype(*from), pgconv.DateToPgtype(*to))
	} else {
		rows, err = r.db.Query(ctx, findWindowsByOwnerSQL, pgconv.UUIDToPgtype(ownerID))
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list availability windows", err)
	}
	defer rows.Close()

	return collectWindowViews(rows)
}

const findActiveWindowsByOwnerAndDateSQL = `
SELECT` + windowColumns + `
FROM owner_availability_windows
WHERE owner_id = $1 AND date = $2 AND is_active
ORDER BY start_time`

func (r *WindowReadStore) FindActiveByOwnerAndDate(ctx context.Context, ownerID uuid.UUID, date time.Time) ([]*queries.WindowView, error) {
	rows, err := r.db.Query(ctx, findActiveWindowsByOwnerAndDateSQL,
		pgconv.UUIDToPgtype(ownerID), pgconv.DateToPgtype(date))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find windows for date", err)
	}
	defer rows.Close()

	return collectWindowViews(rows)
}

func (r *WindowReadStore) FindActiveDates(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]time.Time, error) {
	rows, err := r.db.Query(ctx,
		`SELECT date FROM owner_availability_windows
		 WHERE owner_id = $1 AND date >= $2 AND date <= $3 AND is_active
		 ORDER BY date`,
		pgconv.UUIDToPgtype(ownerID), pgconv.DateToPgtype(from), pgconv.DateToPgtype(to))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find active window dates", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d pgtype.Date
		if err := rows.Scan(&d); err != nil {
			return nil, infra.WrapRepoErr("failed to scan window date", err)
		}
		dates = append(dates, pgconv.DateFromPgtype(d))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read window dates", err)
	}

	return dates, nil
}

const findWindowByIDSQL = `
SELECT` + windowColumns + `
FROM owner_availability_windows
WHERE id = $1`

// FindSnapshotByID feeds the command side, which works in minute-of-day
// offsets rather than clock strings.
func (r *WindowReadStore) FindSnapshotByID(ctx context.Context, id uuid.UUID) (*shared.WindowSnapshot, error) {
	view, err := scanWindowView(r.db.QueryRow(ctx, findWindowByIDSQL, pgconv.UUIDToPgtype(id)))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("availability window not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find availability window", err)
	}

	startMin, err := scheduling.MinutesFromClock(view.StartTime)
	if err != nil {
		return nil, infra.WrapRepoErr("stored start time is malformed", err)
	}
	endMin, err := scheduling.MinutesFromClock(view.EndTime)
	if err != nil {
		return nil, infra.WrapRepoErr("stored end time is malformed", err)
	}

	date, err := time.Parse("2006-01-02", view.Date)
	if err != nil {
		return nil, infra.WrapRepoErr("stored date is malformed", err)
	}

	return &shared.WindowSnapshot{
		ID:           view.ID,
		OwnerID:      view.OwnerID,
		Date:         date,
		StartMin:     startMin,
		EndMin:       endMin,
		SlotDuration: view.SlotDuration,
		IsActive:     view.IsActive,
		Timezone:     view.Timezone,
		Notes:        view.Notes,
	}, nil
}

func collectWindowViews(rows pgx.Rows) ([]*queries.WindowView, error) {
	views := []*queries.WindowView{}
	for rows.Next() {
		view, err := scanWindowView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan availability window", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read availability windows", err)
	}

	return views, nil
}

func scanWindowView(row pgx.Row) (*queries.WindowView, error) {
	var (
		view         queries.WindowView
		date         pgtype.Date
		slotDuration int32
		notes        pgtype.Text
		createdAt    pgtype.Timestamptz
		updatedAt    pgtype.Timestamptz
	)
	err := row.Scan(
		&view.ID, &view.OwnerID, &date, &view.StartTime, &view.EndTime, &slotDuration,
		&view.IsActive, &view.Timezone, &notes, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.Date = pgconv.DateFromPgtype(date).Format("2006-01-02")
	view.SlotDuration = int(slotDuration)
	view.Notes = pgconv.StringPtrFromPgtype(notes)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}
