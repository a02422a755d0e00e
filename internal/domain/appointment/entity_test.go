//go:build unit

package appointment_test

import (
	"testing"
	"time"

	"immoview/internal/domain/appointment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequested(t *testing.T) *appointment.Appointment {
	t.Helper()
	appt, err := appointment.NewAppointment(
		uuid.New(), uuid.New(), uuid.New(),
		time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		60, appointment.TypeViewing, nil, nil,
	)
	require.NoError(t, err)
	return appt
}

func TestNewAppointment(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		appt, err := appointment.NewAppointment(
			uuid.New(), uuid.New(), uuid.New(),
			time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
			0, "", nil, nil,
		)
		require.NoError(t, err)

		assert.Equal(t, appointment.StatusRequested, appt.Status())
		assert.Equal(t, appointment.DefaultDurationMinutes, appt.DurationMinutes())
		assert.Equal(t, appointment.TypeViewing, appt.Type())
		assert.Nil(t, appt.ConfirmedAt())
		assert.Nil(t, appt.CancelledAt())
	})

	t.Run("buyer booking own property rejected", func(t *testing.T) {
		id := uuid.New()
		_, err := appointment.NewAppointment(
			uuid.New(), id, id,
			time.Now(), 60, appointment.TypeViewing, nil, nil,
		)
		assert.ErrorIs(t, err, appointment.ErrBuyerIsOwner)
	})

	t.Run("negative duration rejected", func(t *testing.T) {
		_, err := appointment.NewAppointment(
			uuid.New(), uuid.New(), uuid.New(),
			time.Now(), -30, appointment.TypeViewing, nil, nil,
		)
		assert.ErrorIs(t, err, appointment.ErrInvalidDuration)
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		_, err := appointment.NewAppointment(
			uuid.New(), uuid.New(), uuid.New(),
			time.Now(), 60, appointment.Type("inspection"), nil, nil,
		)
		assert.ErrorIs(t, err, appointment.ErrInvalidType)
	})
}

func TestEndsAt(t *testing.T) {
	appt := newRequested(t)
	assert.Equal(t, appt.ScheduledAt().Add(60*time.Minute), appt.EndsAt())
}

func TestStatusTransitions(t *testing.T) {
	all := []appointment.Status{
		appointment.StatusRequested,
		appointment.StatusConfirmed,
		appointment.StatusCompleted,
		appointment.StatusCancelled,
		appointment.StatusNoShow,
	}

	allowed := map[appointment.Status][]appointment.Status{
		appointment.StatusRequested: {appointment.StatusConfirmed, appointment.StatusCancelled},
		appointment.StatusConfirmed: {appointment.StatusCompleted, appointment.StatusCancelled, appointment.StatusNoShow},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}

	assert.False(t, appointment.StatusRequested.IsTerminal())
	assert.False(t, appointment.StatusConfirmed.IsTerminal())
	assert.True(t, appointment.StatusCompleted.IsTerminal())
	assert.True(t, appointment.StatusCancelled.IsTerminal())
	assert.True(t, appointment.StatusNoShow.IsTerminal())
}

func TestTransitionTo(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("confirm stamps confirmedAt", func(t *testing.T) {
		appt := newRequested(t)
		require.NoError(t, appt.TransitionTo(appointment.StatusConfirmed, now))

		assert.Equal(t, appointment.StatusConfirmed, appt.Status())
		require.NotNil(t, appt.ConfirmedAt())
		assert.Equal(t, now, *appt.ConfirmedAt())
		assert.Nil(t, appt.CancelledAt())
	})

	t.Run("cancel stamps cancelledAt", func(t *testing.T) {
		appt := newRequested(t)
		require.NoError(t, appt.TransitionTo(appointment.StatusCancelled, now))

		require.NotNil(t, appt.CancelledAt())
		assert.Equal(t, now, *appt.CancelledAt())
	})

	t.Run("complete leaves timestamps alone", func(t *testing.T) {
		appt := newRequested(t)
		require.NoError(t, appt.TransitionTo(appointment.StatusConfirmed, now))
		require.NoError(t, appt.TransitionTo(appointment.StatusCompleted, now.Add(time.Hour)))

		assert.Equal(t, appointment.StatusCompleted, appt.Status())
		assert.Nil(t, appt.CancelledAt())
	})

	t.Run("illegal transition rejected and state unchanged", func(t *testing.T) {
		appt := newRequested(t)
		err := appt.TransitionTo(appointment.StatusCompleted, now)

		require.ErrorIs(t, err, appointment.ErrInvalidTransition)
		assert.Equal(t, appointment.StatusRequested, appt.Status())
	})

	t.Run("no way back to requested", func(t *testing.T) {
		appt := newRequested(t)
		require.NoError(t, appt.TransitionTo(appointment.StatusConfirmed, now))

		err := appt.TransitionTo(appointment.StatusRequested, now)
		assert.ErrorIs(t, err, appointment.ErrInvalidTransition)
	})
}

func TestNewStatusAndType(t *testing.T) {
	s, err := appointment.NewStatus("no_show")
	require.NoError(t, err)
	assert.Equal(t, appointment.StatusNoShow, s)

	_, err = appointment.NewStatus("pending")
	assert.ErrorIs(t, err, appointment.ErrInvalidStatus)

	ty, err := appointment.NewType("negotiation")
	require.NoError(t, err)
	assert.Equal(t, appointment.TypeNegotiation, ty)

	_, err = appointment.NewType("")
	assert.ErrorIs(t, err, appointment.ErrInvalidType)
}
