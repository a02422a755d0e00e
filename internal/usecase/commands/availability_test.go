//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"immoview/internal/usecase/commands"
	"immoview/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func windowSnapshot(ownerID uuid.UUID) *shared.WindowSnapshot {
	return &shared.WindowSnapshot{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Date:         time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		StartMin:     9 * 60,
		EndMin:       12 * 60,
		SlotDuration: 30,
		IsActive:     true,
		Timezone:     "Europe/Berlin",
	}
}

func newAvailabilityCommands(uow *fakeUow) commands.AvailabilityCommands {
	return commands.NewAvailabilityCommands(uow, commands.WindowDefaults{Timezone: "Europe/Berlin"})
}

func TestCreateWindow(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uow := newFakeUow()
		uc := newAvailabilityCommands(uow)

		id, err := uc.CreateWindow(context.Background(), uuid.New(), commands.CreateWindowRequest{
			Date:      time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
			StartTime: "09:00",
			EndTime:   "12:00",
		})
		require.NoError(t, err)
		assert.Equal(t, uow.tx.windows.createdID, id)
	})

	t.Run("blank timezone falls back to the configured default", func(t *testing.T) {
		uow := newFakeUow()
		uc := commands.NewAvailabilityCommands(uow, commands.WindowDefaults{Timezone: "Europe/Vienna"})

		_, err := uc.CreateWindow(context.Background(), uuid.New(), commands.CreateWindowRequest{
			Date:      time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
			StartTime: "09:00",
			EndTime:   "12:00",
			Timezone:  "  ",
		})
		require.NoError(t, err)
		require.NotNil(t, uow.tx.windows.created)
		assert.Equal(t, "Europe/Vienna", uow.tx.windows.created.Timezone())
	})

	t.Run("explicit timezone wins over the default", func(t *testing.T) {
		uow := newFakeUow()
		uc := commands.NewAvailabilityCommands(uow, commands.WindowDefaults{Timezone: "Europe/Vienna"})

		_, err := uc.CreateWindow(context.Background(), uuid.New(), commands.CreateWindowRequest{
			Date:      time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
			StartTime: "09:00",
			EndTime:   "12:00",
			Timezone:  "America/New_York",
		})
		require.NoError(t, err)
		require.NotNil(t, uow.tx.windows.created)
		assert.Equal(t, "America/New_York", uow.tx.windows.created.Timezone())
	})

	t.Run("start not before end", func(t *testing.T) {
		uc := newAvailabilityCommands(newFakeUow())

		_, err := uc.CreateWindow(context.Background(), uuid.New(), commands.CreateWindowRequest{
			Date:      time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
			StartTime: "12:00",
			EndTime:   "09:00",
		})
		assert.ErrorIs(t, err, commands.ErrWindowValidation)
	})

	t.Run("malformed clock", func(t *testing.T) {
		uc := newAvailabilityCommands(newFakeUow())

		_, err := uc.CreateWindow(context.Background(), uuid.New(), commands.CreateWindowRequest{
			Date:      time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
			StartTime: "9am",
			EndTime:   "12:00",
		})
		assert.ErrorIs(t, err, commands.ErrWindowValidation)
	})
}

func TestUpdateWindow(t *testing.T) {
	ownerID := uuid.New()

	t.Run("merges partial update and revalidates", func(t *testing.T) {
		uow := newFakeUow()
		uow.tx.reads.window = windowSnapshot(ownerID)
		uow.tx.windows.updateOK = true

		start := "10:00"
		uc := newAvailabilityCommands(uow)
		ok, err := uc.UpdateWindow(context.Background(), uow.tx.reads.window.ID, ownerID, commands.UpdateWindowRequest{
			StartTime: &start,
		})
		require.NoError(t, err)
		assert.True(t, ok)

		merged := uow.tx.windows.updated
		require.NotNil(t, merged)
		assert.Equal(t, "10:00", merged.StartClock())
		assert.Equal(t, "12:00", merged.EndClock(), "untouched fields keep stored values")
		assert.Equal(t, 30, merged.SlotDuration())
	})

	t.Run("missing window reports false without error", func(t *testing.T) {
		uow := newFakeUow()
		uc := newAvailabilityCommands(uow)

		ok, err := uc.UpdateWindow(context.Background(), uuid.New(), ownerID, commands.UpdateWindowRequest{})
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, uow.tx.windows.updated)
	})

	t.Run("another owner's window reports false without error", func(t *testing.T) {
		uow := newFakeUow()
		uow.tx.reads.window = windowSnapshot(uuid.New())

		uc := newAvailabilityCommands(uow)
		ok, err := uc.UpdateWindow(context.Background(), uow.tx.reads.window.ID, ownerID, commands.UpdateWindowRequest{})
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, uow.tx.windows.updated)
	})

	t.Run("merged range must stay valid", func(t *testing.T) {
		uow := newFakeUow()
		uow.tx.reads.window = windowSnapshot(ownerID)

		// Moving the start past the stored end invalidates the window.
		start := "13:00"
		uc := newAvailabilityCommands(uow)
		_, err := uc.UpdateWindow(context.Background(), uow.tx.reads.window.ID, ownerID, commands.UpdateWindowRequest{
			StartTime: &start,
		})
		assert.ErrorIs(t, err, commands.ErrWindowValidation)
	})

	t.Run("slot duration must stay positive", func(t *testing.T) {
		uow := newFakeUow()
		uow.tx.reads.window = windowSnapshot(ownerID)

		bad := -15
		uc := newAvailabilityCommands(uow)
		_, err := uc.UpdateWindow(context.Background(), uow.tx.reads.window.ID, ownerID, commands.UpdateWindowRequest{
			SlotDuration: &bad,
		})
		assert.ErrorIs(t, err, commands.ErrWindowValidation)
	})
}

func TestDeleteWindow(t *testing.T) {
	t.Run("reports repository outcome", func(t *testing.T) {
		uow := newFakeUow()
		uow.tx.windows.deleteOK = true

		uc := newAvailabilityCommands(uow)
		ok, err := uc.DeleteWindow(context.Background(), uuid.New(), uuid.New())
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("missing or foreign window reports false", func(t *testing.T) {
		uow := newFakeUow()

		uc := newAvailabilityCommands(uow)
		ok, err := uc.DeleteWindow(context.Background(), uuid.New(), uuid.New())
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
