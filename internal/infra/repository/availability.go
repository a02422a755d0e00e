package repository

import (
	"context"

	"immoview/internal/domain/availability"
	"immoview/internal/infra"
	"immoview/internal/infra/db"
	"immoview/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type WindowRepository struct{}

func NewWindowRepository() *WindowRepository {
	return &WindowRepository{}
}

const createWindowSQL = `
INSERT INTO owner_availability_windows (
	id, owner_id, date, start_time, end_time, slot_duration, is_active, timezone, notes
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9
)
RETURNING id`

func (r *WindowRepository) Create(ctx context.Context, dbtx db.DBTX, w *availability.Window) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createWindowSQL,
		pgconv.UUIDToPgtype(w.ID()),
		pgconv.UUIDToPgtype(w.OwnerID()),
		pgconv.DateToPgtype(w.Date()),
		w.StartClock(),
		w.EndClock(),
		w.SlotDuration(),
		w.IsActive(),
		w.Timezone(),
		pgconv.StringPtrToPgtype(w.Notes()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapPgErr("failed to create availability window", err)
	}

	return id, nil
}

// Ownership lives in the WHERE clause; a non-matching owner simply updates
// nothing and the caller sees false.
const updateWindowSQL = `
UPDATE owner_availability_windows
SET date = $3,
    start_time = $4,
    end_time = $5,
    slot_duration = $6,
    is_active = $7,
    timezone = $8,
    notes = $9,
    updated_at = now()
WHERE id = $1 AND owner_id = $2`

func (r *WindowRepository) Update(ctx context.Context, dbtx db.DBTX, w *availability.Window) (bool, error) {
	tag, err := dbtx.Exec(ctx, updateWindowSQL,
		pgconv.UUIDToPgtype(w.ID()),
		pgconv.UUIDToPgtype(w.OwnerID()),
		pgconv.DateToPgtype(w.Date()),
		w.StartClock(),
		w.EndClock(),
		w.SlotDuration(),
		w.IsActive(),
		w.Timezone(),
		pgconv.StringPtrToPgtype(w.Notes()),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to update availability window", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *WindowRepository) Delete(ctx context.Context, dbtx db.DBTX, id, ownerID uuid.UUID) (bool, error) {
	tag, err := dbtx.Exec(ctx,
		`DELETE FROM owner_availability_windows WHERE id = $1 AND owner_id = $2`,
		pgconv.UUIDToPgtype(id),
		pgconv.UUIDToPgtype(ownerID),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to delete availability window", err)
	}

	return tag.RowsAffected() > 0, nil
}
