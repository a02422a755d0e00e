package readstore

import (
	"context"

	"immoview/internal/infra"
	"immoview/internal/infra/db"
	"immoview/internal/pkg/pgconv"
	"immoview/internal/usecase/shared"

	"github.com/google/uuid"
)

type PropertyReadStore struct {
	db db.DBTX
}

func NewPropertyReadStore(dbtx db.DBTX) *PropertyReadStore {
	return &PropertyReadStore{db: dbtx}
}

func (r *PropertyReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.PropertySnapshot, error) {
	var snap shared.PropertySnapshot
	err := r.db.QueryRow(ctx,
		`SELECT id, owner_id, title, status FROM properties WHERE id = $1`,
		pgconv.UUIDToPgtype(id),
	).Scan(&snap.ID, &snap.OwnerID, &snap.Title, &snap.Status)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("property not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find property", err)
	}

	return &snap, nil
}
