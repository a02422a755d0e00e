package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"immoview/internal/domain/appointment"
	"immoview/internal/infra"
	"immoview/internal/pkg/clock"
	"immoview/internal/pkg/errs"
	"immoview/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrPropertyNotFound         = errs.New("property not found")
	ErrOwnershipMismatch        = errs.New("property owner mismatch")
	ErrSlotUnavailable          = errs.New("time slot is not available")
	ErrAppointmentNotFoundWrite = errs.New("appointment not found")
	ErrAppointmentUnauthorized  = errs.New("not a participant of this appointment")
	ErrAppointmentValidation    = errs.New("appointment validation error")
	ErrInvalidStatusTransition  = errs.New("invalid appointment status transition")
	ErrAppointmentNotDeletable  = errs.New("only requested appointments can be deleted")
)

type CreateAppointmentRequest struct {
	PropertyID      uuid.UUID
	OwnerID         uuid.UUID
	ScheduledAt     time.Time
	DurationMinutes int
	Type            string
	Notes           *string
}

type AppointmentCommands interface {
	CreateAppointment(ctx context.Context, buyerID uuid.UUID, req CreateAppointmentRequest) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, appointmentID, actorID uuid.UUID, newStatus string, ownerNotes *string) error
	UpdateNotes(ctx context.Context, appointmentID, actorID uuid.UUID, noteType string, notes *string) error
	DeleteAppointment(ctx context.Context, appointmentID, actorID uuid.UUID) error
}

type appointmentCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewAppointmentCommands(uow shared.UnitOfWork, clk clock.Clock) AppointmentCommands {
	return &appointmentCommandsImpl{uow: uow, clock: clk}
}

// CreateAppointment books a viewing as the buyer. Property lookup, the
// conflict check and the insert all run inside one transaction; the conflict
// read locks the property's confirmed appointments so two concurrent
// requests for the same slot cannot both pass the check.
func (uc *appointmentCommandsImpl) CreateAppointment(ctx context.Context, buyerID uuid.UUID, req CreateAppointmentRequest) (uuid.UUID, error) {
	apptType := appointment.DefaultType
	if req.Type != "" {
		t, err := appointment.NewType(req.Type)
		if err != nil {
			return uuid.Nil, errs.Mark(err, ErrAppointmentValidation)
		}
		apptType = t
	}

	var createdID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		property, txErr := tx.Reads().PropertyByID(ctx, req.PropertyID)
		if txErr != nil {
			if infra.IsKind(txErr, infra.KindNotFound) {
				return ErrPropertyNotFound
			}
			return txErr
		}
		if property.OwnerID != req.OwnerID {
			return ErrOwnershipMismatch
		}

		appt, txErr := appointment.NewAppointment(
			req.PropertyID,
			buyerID,
			property.OwnerID,
			req.ScheduledAt,
			req.DurationMinutes,
			apptType,
			req.Notes,
			uc.buyerSnapshot(ctx, tx, buyerID),
		)
		if txErr != nil {
			return errs.Mark(txErr, ErrAppointmentValidation)
		}

		conflicts, txErr := tx.Appointments().LockConfirmedOverlapping(
			ctx, tx.DB(), req.PropertyID, appt.ScheduledAt(), appt.EndsAt(),
		)
		if txErr != nil {
			return txErr
		}
		if conflicts > 0 {
			return ErrSlotUnavailable
		}

		id, txErr := tx.Appointments().Create(ctx, tx.DB(), appt)
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

// buyerSnapshot serializes the buyer's profile for freezing into the
// appointment. A missing profile or a failed read degrades to no snapshot;
// booking never fails because of it.
func (uc *appointmentCommandsImpl) buyerSnapshot(ctx context.Context, tx shared.Tx, buyerID uuid.UUID) []byte {
	profile, err := tx.Reads().BuyerProfileByUserID(ctx, buyerID)
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			slog.Warn("failed to read buyer profile for snapshot", "buyer_id", buyerID, "error", err.Error())
		}
		return nil
	}

	profile.SnapshotDate = uc.clock.Now()
	data, err := json.Marshal(profile)
	if err != nil {
		slog.Warn("failed to serialize buyer profile snapshot", "buyer_id", buyerID, "error", err.Error())
		return nil
	}
	return data
}

func (uc *appointmentCommandsImpl) UpdateStatus(ctx context.Context, appointmentID, actorID uuid.UUID, newStatus string, ownerNotes *string) error {
	next, err := appointment.NewStatus(newStatus)
	if err != nil {
		return errs.Mark(err, ErrAppointmentValidation)
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		appt, txErr := uc.loadForWrite(ctx, tx, appointmentID)
		if txErr != nil {
			return txErr
		}
		if !appt.HostedBy(actorID) {
			return ErrAppointmentUnauthorized
		}

		if txErr := appt.TransitionTo(next, uc.clock.Now()); txErr != nil {
			return errs.Mark(txErr, ErrInvalidStatusTransition)
		}
		if ownerNotes != nil {
			appt.SetOwnerNotes(ownerNotes)
		}

		return tx.Appointments().UpdateStatus(ctx, tx.DB(), appt)
	})
}

// UpdateNotes writes to the buyer's or the owner's notes column. Buyers may
// only touch buyer notes and owners only owner notes; everyone else is
// rejected outright.
func (uc *appointmentCommandsImpl) UpdateNotes(ctx context.Context, appointmentID, actorID uuid.UUID, noteType string, notes *string) error {
	if noteType == "" {
		noteType = "buyer"
	}
	if noteType != "buyer" && noteType != "owner" {
		return errs.Mark(errs.New("unknown note type "+noteType), ErrAppointmentValidation)
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		appt, txErr := uc.loadForWrite(ctx, tx, appointmentID)
		if txErr != nil {
			return txErr
		}
		if !appt.BookedBy(actorID) && !appt.HostedBy(actorID) {
			return ErrAppointmentUnauthorized
		}

		if noteType == "owner" {
			if !appt.HostedBy(actorID) {
				return ErrAppointmentUnauthorized
			}
			return tx.Appointments().SetOwnerNotes(ctx, tx.DB(), appointmentID, notes)
		}

		if !appt.BookedBy(actorID) {
			return ErrAppointmentUnauthorized
		}
		return tx.Appointments().SetBuyerNotes(ctx, tx.DB(), appointmentID, notes)
	})
}

func (uc *appointmentCommandsImpl) DeleteAppointment(ctx context.Context, appointmentID, actorID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		appt, txErr := uc.loadForWrite(ctx, tx, appointmentID)
		if txErr != nil {
			return txErr
		}
		if !appt.BookedBy(actorID) {
			return ErrAppointmentUnauthorized
		}
		if !appt.IsRequested() {
			return ErrAppointmentNotDeletable
		}

		return tx.Appointments().Delete(ctx, tx.DB(), appointmentID)
	})
}

func (uc *appointmentCommandsImpl) loadForWrite(ctx context.Context, tx shared.Tx, id uuid.UUID) (*appointment.Appointment, error) {
	snap, err := tx.Reads().AppointmentByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAppointmentNotFoundWrite
		}
		return nil, err
	}

	status, err := appointment.NewStatus(snap.Status)
	if err != nil {
		return nil, err
	}

	// The stored status timestamps must survive the round trip; UpdateStatus
	// writes both columns back from the entity.
	return appointment.ReconstructAppointment(
		snap.ID, snap.PropertyID, snap.BuyerID, snap.OwnerID,
		snap.ScheduledAt, snap.DurationMinutes,
		appointment.DefaultType, status,
		nil, nil, nil, nil, nil, nil,
		snap.ConfirmedAt, snap.CancelledAt,
		time.Time{}, time.Time{},
	), nil
}
