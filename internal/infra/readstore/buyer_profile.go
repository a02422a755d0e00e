package readstore

import (
	"context"

	"immoview/internal/infra"
	"immoview/internal/infra/db"
	"immoview/internal/pkg/pgconv"
	"immoview/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BuyerProfileReadStore struct {
	db db.DBTX
}

func NewBuyerProfileReadStore(dbtx db.DBTX) *BuyerProfileReadStore {
	return &BuyerProfileReadStore{db: dbtx}
}

// FindByUserID reads the qualification fields for the booking snapshot. All
// of them except the two flags are optional, so they scan through pgtype.
func (r *BuyerProfileReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) (*shared.BuyerProfileSnapshot, error) {
	var (
		snap          shared.BuyerProfileSnapshot
		equityBand    pgtype.Text
		timeline      pgtype.Text
		purpose       pgtype.Text
		householdSize pgtype.Int4
	)
	err := r.db.QueryRow(ctx,
		`SELECT equity_band, timeline, purpose, household_size, schufa_available, financing_verified
		 FROM buyer_profiles WHERE user_id = $1`,
		pgconv.UUIDToPgtype(userID),
	).Scan(&equityBand, &timeline, &purpose, &householdSize, &snap.SchufaAvailable, &snap.FinancingVerified)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("buyer profile not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find buyer profile", err)
	}

	snap.EquityBand = pgconv.StringPtrFromPgtype(equityBand)
	snap.Timeline = pgconv.StringPtrFromPgtype(timeline)
	snap.Purpose = pgconv.StringPtrFromPgtype(purpose)
	snap.HouseholdSize = pgconv.IntPtrFromPgtype(householdSize)
	return &snap, nil
}
