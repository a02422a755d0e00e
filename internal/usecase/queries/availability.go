package queries

import (
	"context"
	"time"

	"immoview/internal/domain/scheduling"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type AvailabilityQueries interface {
	ListWindows(ctx context.Context, ownerID uuid.UUID, from, to *time.Time) ([]*WindowView, error)
	GenerateTimeSlots(ctx context.Context, ownerID uuid.UUID, date time.Time) ([]*TimeSlotView, error)
	HasAvailabilityForDate(ctx context.Context, ownerID uuid.UUID, date time.Time) (bool, error)
	AvailableDates(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]string, error)
}

type WindowReadStore interface {
	FindByOwner(ctx context.Context, ownerID uuid.UUID, from, to *time.Time) ([]*WindowView, error)
	FindActiveByOwnerAndDate(ctx context.Context, ownerID uuid.UUID, date time.Time) ([]*WindowView, error)
	// FindActiveDates returns the dates of active windows in [from, to],
	// ordered ascending. Dates repeat when an owner has several windows on
	// one day.
	FindActiveDates(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]time.Time, error)
}

// BlockingAppointment is the slice of an appointment the slot generator needs
// to subtract booked time.
type BlockingAppointment struct {
	ScheduledAt     time.Time
	DurationMinutes int
}

type AppointmentBlocksReadStore interface {
	// FindBlockingByOwnerOnDate returns the owner's appointments scheduled on
	// the given date with status requested or confirmed.
	FindBlockingByOwnerOnDate(ctx context.Context, ownerID uuid.UUID, date time.Time) ([]*BlockingAppointment, error)
}

type availabilityQueriesImpl struct {
	windows WindowReadStore
	blocks  AppointmentBlocksReadStore
}

func NewAvailabilityQueries(windows WindowReadStore, blocks AppointmentBlocksReadStore) AvailabilityQueries {
	return &availabilityQueriesImpl{
		windows: windows,
		blocks:  blocks,
	}
}

func (q *availabilityQueriesImpl) ListWindows(ctx context.Context, ownerID uuid.UUID, from, to *time.Time) ([]*WindowView, error) {
	return q.windows.FindByOwner(ctx, ownerID, from, to)
}

// GenerateTimeSlots slices every active window on the date into slots and
// marks each one against the owner's requested and confirmed appointments.
// Windows contribute independently; two overlapping windows produce duplicate
// slot entries.
func (q *availabilityQueriesImpl) GenerateTimeSlots(ctx context.Context, ownerID uuid.UUID, date time.Time) ([]*TimeSlotView, error) {
	windows, err := q.windows.FindActiveByOwnerAndDate(ctx, ownerID, date)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return []*TimeSlotView{}, nil
	}

	blocking, err := q.blocks.FindBlockingByOwnerOnDate(ctx, ownerID, date)
	if err != nil {
		return nil, err
	}

	slots := []*TimeSlotView{}
	for _, w := range windows {
		startMin, err := scheduling.MinutesFromClock(w.StartTime)
		if err != nil {
			return nil, err
		}
		endMin, err := scheduling.MinutesFromClock(w.EndTime)
		if err != nil {
			return nil, err
		}

		for _, s := range scheduling.SlotsInWindow(startMin, endMin, w.SlotDuration) {
			slotStart, slotEnd := scheduling.SlotTimes(date, s)

			booked := false
			for _, b := range blocking {
				apptEnd := b.ScheduledAt.Add(time.Duration(b.DurationMinutes) * time.Minute)
				if scheduling.Overlaps(slotStart, slotEnd, b.ScheduledAt, apptEnd) {
					booked = true
					break
				}
			}

			slots = append(slots, &TimeSlotView{
				StartTime: s.StartClock(),
				EndTime:   s.EndClock(),
				Available: !booked,
			})
		}
	}

	return slots, nil
}

// HasAvailabilityForDate reports whether at least one generated slot on the
// date is still free.
func (q *availabilityQueriesImpl) HasAvailabilityForDate(ctx context.Context, ownerID uuid.UUID, date time.Time) (bool, error) {
	slots, err := q.GenerateTimeSlots(ctx, ownerID, date)
	if err != nil {
		return false, err
	}

	for _, s := range slots {
		if s.Available {
			return true, nil
		}
	}
	return false, nil
}

// AvailableDates lists the dates in [from, to] where the owner has an active
// window with at least one free slot, formatted as "2006-01-02" ascending.
func (q *availabilityQueriesImpl) AvailableDates(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]string, error) {
	dates, err := q.windows.FindActiveDates(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}

	available := []string{}
	seen := map[string]struct{}{}
	for _, d := range dates {
		key := d.Format(dateLayout)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		ok, err := q.HasAvailabilityForDate(ctx, ownerID, d)
		if err != nil {
			return nil, err
		}
		if ok {
			available = append(available, key)
		}
	}

	return available, nil
}
