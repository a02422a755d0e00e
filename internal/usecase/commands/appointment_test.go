//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"immoview/internal/domain/appointment"
	"immoview/internal/pkg/clock"
	"immoview/internal/usecase/commands"
	"immoview/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var frozenNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func newAppointmentCommands(uow *fakeUow) commands.AppointmentCommands {
	return commands.NewAppointmentCommands(uow, clock.NewMockClock(frozenNow))
}

func createReq(propertyID, ownerID uuid.UUID) commands.CreateAppointmentRequest {
	return commands.CreateAppointmentRequest{
		PropertyID:      propertyID,
		OwnerID:         ownerID,
		ScheduledAt:     time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Type:            "viewing",
	}
}

func TestCreateAppointment_Success(t *testing.T) {
	ownerID := uuid.New()
	buyerID := uuid.New()
	propertyID := uuid.New()

	uow := newFakeUow()
	uow.tx.reads.property = &shared.PropertySnapshot{ID: propertyID, OwnerID: ownerID, Title: "Test property", Status: "active"}

	uc := newAppointmentCommands(uow)
	id, err := uc.CreateAppointment(context.Background(), buyerID, createReq(propertyID, ownerID))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	created := uow.tx.appointments.created
	require.NotNil(t, created)
	assert.Equal(t, buyerID, created.BuyerID())
	assert.Equal(t, ownerID, created.OwnerID())
	assert.Equal(t, appointment.StatusRequested, created.Status())
	assert.Nil(t, created.BuyerSnapshot())
}

func TestCreateAppointment_FreezesBuyerProfile(t *testing.T) {
	ownerID := uuid.New()
	propertyID := uuid.New()

	equityBand := "100k-250k"
	timeline := "3-6 months"
	purpose := "own use"
	householdSize := 3

	uow := newFakeUow()
	uow.tx.reads.property = &shared.PropertySnapshot{ID: propertyID, OwnerID: ownerID}
	uow.tx.reads.profile = &shared.BuyerProfileSnapshot{
		EquityBand:        &equityBand,
		Timeline:          &timeline,
		Purpose:           &purpose,
		HouseholdSize:     &householdSize,
		SchufaAvailable:   true,
		FinancingVerified: true,
	}

	uc := newAppointmentCommands(uow)
	_, err := uc.CreateAppointment(context.Background(), uuid.New(), createReq(propertyID, ownerID))
	require.NoError(t, err)

	var snap shared.BuyerProfileSnapshot
	require.NotNil(t, uow.tx.appointments.created)
	require.NoError(t, json.Unmarshal(uow.tx.appointments.created.BuyerSnapshot(), &snap))
	require.NotNil(t, snap.EquityBand)
	assert.Equal(t, equityBand, *snap.EquityBand)
	assert.True(t, snap.FinancingVerified)
	assert.Equal(t, frozenNow, snap.SnapshotDate.UTC())
}

func TestCreateAppointment_FreezesPartialBuyerProfile(t *testing.T) {
	ownerID := uuid.New()
	propertyID := uuid.New()
	equityBand := "under 100k"

	uow := newFakeUow()
	uow.tx.reads.property = &shared.PropertySnapshot{ID: propertyID, OwnerID: ownerID}
	uow.tx.reads.profile = &shared.BuyerProfileSnapshot{
		EquityBand:      &equityBand,
		SchufaAvailable: true,
	}

	uc := newAppointmentCommands(uow)
	_, err := uc.CreateAppointment(context.Background(), uuid.New(), createReq(propertyID, ownerID))
	require.NoError(t, err)

	var snap shared.BuyerProfileSnapshot
	require.NotNil(t, uow.tx.appointments.created)
	require.NoError(t, json.Unmarshal(uow.tx.appointments.created.BuyerSnapshot(), &snap))
	require.NotNil(t, snap.EquityBand)
	assert.Equal(t, equityBand, *snap.EquityBand)
	assert.Nil(t, snap.Timeline)
	assert.Nil(t, snap.HouseholdSize)
	assert.True(t, snap.SchufaAvailable)
}

func TestCreateAppointment_ProfileReadFailureDoesNotBlockBooking(t *testing.T) {
	ownerID := uuid.New()
	propertyID := uuid.New()

	uow := newFakeUow()
	uow.tx.reads.property = &shared.PropertySnapshot{ID: propertyID, OwnerID: ownerID}
	uow.tx.reads.profileErr = errors.New("connection reset")

	uc := newAppointmentCommands(uow)
	_, err := uc.CreateAppointment(context.Background(), uuid.New(), createReq(propertyID, ownerID))
	require.NoError(t, err)
	assert.Nil(t, uow.tx.appointments.created.BuyerSnapshot())
}

func TestCreateAppointment_PropertyNotFound(t *testing.T) {
	uow := newFakeUow()

	uc := newAppointmentCommands(uow)
	_, err := uc.CreateAppointment(context.Background(), uuid.New(), createReq(uuid.New(), uuid.New()))
	assert.ErrorIs(t, err, commands.ErrPropertyNotFound)
}

func TestCreateAppointment_OwnerMismatch(t *testing.T) {
	propertyID := uuid.New()

	uow := newFakeUow()
	uow.tx.reads.property = &shared.PropertySnapshot{ID: propertyID, OwnerID: uuid.New()}

	uc := newAppointmentCommands(uow)
	_, err := uc.CreateAppointment(context.Background(), uuid.New(), createReq(propertyID, uuid.New()))
	assert.ErrorIs(t, err, commands.ErrOwnershipMismatch)
}

func TestCreateAppointment_BuyerCannotBookOwnProperty(t *testing.T) {
	ownerID := uuid.New()
	propertyID := uuid.New()

	uow := newFakeUow()
	uow.tx.reads.property = &shared.PropertySnapshot{ID: propertyID, OwnerID: ownerID}

	uc := newAppointmentCommands(uow)
	_, err := uc.CreateAppointment(context.Background(), ownerID, createReq(propertyID, ownerID))
	assert.ErrorIs(t, err, commands.ErrAppointmentValidation)
	assert.ErrorIs(t, err, appointment.ErrBuyerIsOwner)
}

func TestCreateAppointment_ConflictingSlot(t *testing.T) {
	ownerID := uuid.New()
	propertyID := uuid.New()

	uow := newFakeUow()
	uow.tx.reads.property = &shared.PropertySnapshot{ID: propertyID, OwnerID: ownerID}
	uow.tx.appointments.conflicts = 1

	uc := newAppointmentCommands(uow)
	_, err := uc.CreateAppointment(context.Background(), uuid.New(), createReq(propertyID, ownerID))
	assert.ErrorIs(t, err, commands.ErrSlotUnavailable)
	assert.Nil(t, uow.tx.appointments.created, "no insert after a conflict")
}

func TestCreateAppointment_UnknownType(t *testing.T) {
	uow := newFakeUow()

	uc := newAppointmentCommands(uow)
	req := createReq(uuid.New(), uuid.New())
	req.Type = "inspection"
	_, err := uc.CreateAppointment(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, commands.ErrAppointmentValidation)
}

func requestedSnapshot(buyerID, ownerID uuid.UUID) *shared.AppointmentSnapshot {
	return &shared.AppointmentSnapshot{
		ID:              uuid.New(),
		PropertyID:      uuid.New(),
		BuyerID:         buyerID,
		OwnerID:         ownerID,
		ScheduledAt:     time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          "requested",
	}
}

func TestUpdateStatus_OwnerConfirms(t *testing.T) {
	buyerID := uuid.New()
	ownerID := uuid.New()

	uow := newFakeUow()
	uow.tx.reads.appointment = requestedSnapshot(buyerID, ownerID)

	uc := newAppointmentCommands(uow)
	err := uc.UpdateStatus(context.Background(), uow.tx.reads.appointment.ID, ownerID, "confirmed", nil)
	require.NoError(t, err)

	updated := uow.tx.appointments.statusUpdated
	require.NotNil(t, updated)
	assert.Equal(t, appointment.StatusConfirmed, updated.Status())
	require.NotNil(t, updated.ConfirmedAt())
	assert.Equal(t, frozenNow, updated.ConfirmedAt().UTC())
}

func TestUpdateStatus_StampsCancelledAt(t *testing.T) {
	ownerID := uuid.New()

	uow := newFakeUow()
	uow.tx.reads.appointment = requestedSnapshot(uuid.New(), ownerID)

	uc := newAppointmentCommands(uow)
	err := uc.UpdateStatus(context.Background(), uow.tx.reads.appointment.ID, ownerID, "cancelled", nil)
	require.NoError(t, err)

	updated := uow.tx.appointments.statusUpdated
	require.NotNil(t, updated.CancelledAt())
	assert.Equal(t, frozenNow, updated.CancelledAt().UTC())
}

func TestUpdateStatus_CancellingConfirmedKeepsConfirmedAt(t *testing.T) {
	ownerID := uuid.New()
	confirmedAt := time.Date(2026, 9, 2, 9, 30, 0, 0, time.UTC)

	uow := newFakeUow()
	snap := requestedSnapshot(uuid.New(), ownerID)
	snap.Status = "confirmed"
	snap.ConfirmedAt = &confirmedAt
	uow.tx.reads.appointment = snap

	uc := newAppointmentCommands(uow)
	err := uc.UpdateStatus(context.Background(), snap.ID, ownerID, "cancelled", nil)
	require.NoError(t, err)

	updated := uow.tx.appointments.statusUpdated
	require.NotNil(t, updated)
	assert.Equal(t, appointment.StatusCancelled, updated.Status())
	require.NotNil(t, updated.ConfirmedAt(), "confirmation timestamp must survive the cancellation")
	assert.Equal(t, confirmedAt, updated.ConfirmedAt().UTC())
	require.NotNil(t, updated.CancelledAt())
	assert.Equal(t, frozenNow, updated.CancelledAt().UTC())
}

func TestUpdateStatus_CompletingKeepsConfirmedAt(t *testing.T) {
	ownerID := uuid.New()
	confirmedAt := time.Date(2026, 9, 2, 9, 30, 0, 0, time.UTC)

	uow := newFakeUow()
	snap := requestedSnapshot(uuid.New(), ownerID)
	snap.Status = "confirmed"
	snap.ConfirmedAt = &confirmedAt
	uow.tx.reads.appointment = snap

	uc := newAppointmentCommands(uow)
	err := uc.UpdateStatus(context.Background(), snap.ID, ownerID, "completed", nil)
	require.NoError(t, err)

	updated := uow.tx.appointments.statusUpdated
	require.NotNil(t, updated)
	require.NotNil(t, updated.ConfirmedAt())
	assert.Equal(t, confirmedAt, updated.ConfirmedAt().UTC())
	assert.Nil(t, updated.CancelledAt())
}

func TestUpdateStatus_AttachesOwnerNotes(t *testing.T) {
	ownerID := uuid.New()

	uow := newFakeUow()
	uow.tx.reads.appointment = requestedSnapshot(uuid.New(), ownerID)

	notes := "bring the energy certificate"
	uc := newAppointmentCommands(uow)
	err := uc.UpdateStatus(context.Background(), uow.tx.reads.appointment.ID, ownerID, "confirmed", &notes)
	require.NoError(t, err)

	require.NotNil(t, uow.tx.appointments.statusUpdated.OwnerNotes())
	assert.Equal(t, notes, *uow.tx.appointments.statusUpdated.OwnerNotes())
}

func TestUpdateStatus_OnlyOwnerMayTransition(t *testing.T) {
	buyerID := uuid.New()

	uow := newFakeUow()
	uow.tx.reads.appointment = requestedSnapshot(buyerID, uuid.New())

	uc := newAppointmentCommands(uow)
	err := uc.UpdateStatus(context.Background(), uow.tx.reads.appointment.ID, buyerID, "confirmed", nil)
	assert.ErrorIs(t, err, commands.ErrAppointmentUnauthorized)
}

func TestUpdateStatus_IllegalTransition(t *testing.T) {
	ownerID := uuid.New()

	uow := newFakeUow()
	snap := requestedSnapshot(uuid.New(), ownerID)
	snap.Status = "cancelled"
	uow.tx.reads.appointment = snap

	uc := newAppointmentCommands(uow)
	err := uc.UpdateStatus(context.Background(), snap.ID, ownerID, "confirmed", nil)
	assert.ErrorIs(t, err, commands.ErrInvalidStatusTransition)
	assert.Nil(t, uow.tx.appointments.statusUpdated)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	uc := newAppointmentCommands(newFakeUow())

	err := uc.UpdateStatus(context.Background(), uuid.New(), uuid.New(), "postponed", nil)
	assert.ErrorIs(t, err, commands.ErrAppointmentValidation)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	uc := newAppointmentCommands(newFakeUow())

	err := uc.UpdateStatus(context.Background(), uuid.New(), uuid.New(), "confirmed", nil)
	assert.ErrorIs(t, err, commands.ErrAppointmentNotFoundWrite)
}

func TestUpdateNotes(t *testing.T) {
	buyerID := uuid.New()
	ownerID := uuid.New()
	notes := "second viewing requested"

	testCases := []struct {
		name     string
		actorID  uuid.UUID
		noteType string
		wantErr  error
		wantSide string
	}{
		{name: "buyer writes buyer notes", actorID: buyerID, noteType: "buyer", wantSide: "buyer"},
		{name: "note type defaults to buyer", actorID: buyerID, noteType: "", wantSide: "buyer"},
		{name: "owner writes owner notes", actorID: ownerID, noteType: "owner", wantSide: "owner"},
		{name: "buyer may not write owner notes", actorID: buyerID, noteType: "owner", wantErr: commands.ErrAppointmentUnauthorized},
		{name: "owner may not write buyer notes", actorID: ownerID, noteType: "buyer", wantErr: commands.ErrAppointmentUnauthorized},
		{name: "outsider is rejected", actorID: uuid.New(), noteType: "buyer", wantErr: commands.ErrAppointmentUnauthorized},
		{name: "unknown note type", actorID: buyerID, noteType: "agent", wantErr: commands.ErrAppointmentValidation},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uow := newFakeUow()
			uow.tx.reads.appointment = requestedSnapshot(buyerID, ownerID)

			uc := newAppointmentCommands(uow)
			err := uc.UpdateNotes(context.Background(), uow.tx.reads.appointment.ID, tc.actorID, tc.noteType, &notes)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, uow.tx.appointments.notesSet)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantSide, uow.tx.appointments.notesSet)
		})
	}
}

func TestDeleteAppointment(t *testing.T) {
	buyerID := uuid.New()
	ownerID := uuid.New()

	t.Run("buyer deletes a requested appointment", func(t *testing.T) {
		uow := newFakeUow()
		uow.tx.reads.appointment = requestedSnapshot(buyerID, ownerID)

		uc := newAppointmentCommands(uow)
		err := uc.DeleteAppointment(context.Background(), uow.tx.reads.appointment.ID, buyerID)
		require.NoError(t, err)
		assert.Equal(t, uow.tx.reads.appointment.ID, uow.tx.appointments.deletedID)
	})

	t.Run("owner may not delete", func(t *testing.T) {
		uow := newFakeUow()
		uow.tx.reads.appointment = requestedSnapshot(buyerID, ownerID)

		uc := newAppointmentCommands(uow)
		err := uc.DeleteAppointment(context.Background(), uow.tx.reads.appointment.ID, ownerID)
		assert.ErrorIs(t, err, commands.ErrAppointmentUnauthorized)
	})

	t.Run("confirmed appointments are not deletable", func(t *testing.T) {
		uow := newFakeUow()
		snap := requestedSnapshot(buyerID, ownerID)
		snap.Status = "confirmed"
		uow.tx.reads.appointment = snap

		uc := newAppointmentCommands(uow)
		err := uc.DeleteAppointment(context.Background(), snap.ID, buyerID)
		assert.ErrorIs(t, err, commands.ErrAppointmentNotDeletable)
		assert.Equal(t, uuid.Nil, uow.tx.appointments.deletedID)
	})

	t.Run("missing appointment", func(t *testing.T) {
		uc := newAppointmentCommands(newFakeUow())
		err := uc.DeleteAppointment(context.Background(), uuid.New(), buyerID)
		assert.ErrorIs(t, err, commands.ErrAppointmentNotFoundWrite)
	})
}
