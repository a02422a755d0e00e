package commands

import (
	"context"
	"strings"
	"time"

	"immoview/internal/domain/availability"
	"immoview/internal/domain/scheduling"
	"immoview/internal/infra"
	"immoview/internal/pkg/errs"
	"immoview/internal/pkg/patch"
	"immoview/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrWindowValidation = errs.New("availability window validation error")

type CreateWindowRequest struct {
	Date         time.Time
	StartTime    string
	EndTime      string
	SlotDuration int
	Timezone     string
	Notes        *string
}

type UpdateWindowRequest struct {
	Date         *time.Time
	StartTime    *string
	EndTime      *string
	SlotDuration *int
	IsActive     *bool
	Timezone     *string
	Notes        *string
}

type AvailabilityCommands interface {
	CreateWindow(ctx context.Context, ownerID uuid.UUID, req CreateWindowRequest) (uuid.UUID, error)
	// UpdateWindow and DeleteWindow report false when the window does not
	// exist or belongs to another owner; neither case is an error.
	UpdateWindow(ctx context.Context, windowID, ownerID uuid.UUID, req UpdateWindowRequest) (bool, error)
	DeleteWindow(ctx context.Context, windowID, ownerID uuid.UUID) (bool, error)
}

// WindowDefaults holds the configured fallbacks applied when a create
// request leaves a field blank.
type WindowDefaults struct {
	Timezone string
}

type availabilityCommandsImpl struct {
	uow      shared.UnitOfWork
	defaults WindowDefaults
}

func NewAvailabilityCommands(uow shared.UnitOfWork, defaults WindowDefaults) AvailabilityCommands {
	return &availabilityCommandsImpl{uow: uow, defaults: defaults}
}

func (uc *availabilityCommandsImpl) CreateWindow(ctx context.Context, ownerID uuid.UUID, req CreateWindowRequest) (uuid.UUID, error) {
	timezone := strings.TrimSpace(req.Timezone)
	if timezone == "" {
		timezone = uc.defaults.Timezone
	}

	w, err := availability.NewWindow(
		ownerID,
		req.Date,
		req.StartTime,
		req.EndTime,
		req.SlotDuration,
		timezone,
		req.Notes,
	)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrWindowValidation)
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, txErr := tx.Windows().Create(ctx, tx.DB(), w)
		if txErr != nil {
			return txErr
		}
		createdID = id
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	return createdID, nil
}

func (uc *availabilityCommandsImpl) UpdateWindow(ctx context.Context, windowID, ownerID uuid.UUID, req UpdateWindowRequest) (bool, error) {
	updated := false
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, txErr := tx.Reads().WindowByID(ctx, windowID)
		if txErr != nil {
			if infra.IsKind(txErr, infra.KindNotFound) {
				return nil
			}
			return txErr
		}
		if snap.OwnerID != ownerID {
			return nil
		}

		merged, txErr := mergeWindow(snap, req)
		if txErr != nil {
			return txErr
		}

		ok, txErr := tx.Windows().Update(ctx, tx.DB(), merged)
		if txErr != nil {
			return txErr
		}
		updated = ok
		return nil
	})
	if err != nil {
		return false, err
	}

	return updated, nil
}

func (uc *availabilityCommandsImpl) DeleteWindow(ctx context.Context, windowID, ownerID uuid.UUID) (bool, error) {
	deleted := false
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ok, txErr := tx.Windows().Delete(ctx, tx.DB(), windowID, ownerID)
		if txErr != nil {
			return txErr
		}
		deleted = ok
		return nil
	})
	if err != nil {
		return false, err
	}

	return deleted, nil
}

// mergeWindow folds a partial update into the stored state and revalidates
// the result through the domain constructor rules.
func mergeWindow(snap *shared.WindowSnapshot, req UpdateWindowRequest) (*availability.Window, error) {
	startMin := snap.StartMin
	if req.StartTime != nil {
		m, err := scheduling.MinutesFromClock(*req.StartTime)
		if err != nil {
			return nil, errs.Mark(err, ErrWindowValidation)
		}
		startMin = m
	}

	endMin := snap.EndMin
	if req.EndTime != nil {
		m, err := scheduling.MinutesFromClock(*req.EndTime)
		if err != nil {
			return nil, errs.Mark(err, ErrWindowValidation)
		}
		endMin = m
	}

	if startMin >= endMin {
		return nil, errs.Mark(availability.ErrInvalidTimeRange, ErrWindowValidation)
	}

	slotDuration := patch.Coalesce(req.SlotDuration, snap.SlotDuration)
	if slotDuration <= 0 {
		return nil, errs.Mark(availability.ErrInvalidSlotDuration, ErrWindowValidation)
	}

	notes := snap.Notes
	if req.Notes != nil {
		notes = req.Notes
	}

	return availability.ReconstructWindow(
		snap.ID,
		snap.OwnerID,
		patch.Coalesce(req.Date, snap.Date),
		startMin,
		endMin,
		slotDuration,
		patch.Coalesce(req.IsActive, snap.IsActive),
		patch.Coalesce(req.Timezone, snap.Timezone),
		notes,
		time.Time{}, // createdAt is not touched by updates
		time.Time{},
	), nil
}
