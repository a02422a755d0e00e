package availability

import (
	"strings"
	"time"

	"immoview/internal/domain/scheduling"
	"immoview/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeRange    = errs.New("start time must be before end time")
	ErrInvalidSlotDuration = errs.New("slot duration must be positive")
)

const (
	DefaultSlotDuration = 30
	DefaultTimezone     = "Europe/Berlin"
)

// Window is an owner's declaration that they can be booked on one calendar
// date within one time range. Windows do not track bookings themselves;
// availability is derived by intersecting with appointment records.
type Window struct {
	id           uuid.UUID
	ownerID      uuid.UUID
	date         time.Time // calendar date, time component zeroed
	startMin     int       // minute of day
	endMin       int
	slotDuration int
	isActive     bool
	timezone     string
	notes        *string
	createdAt    time.Time
	updatedAt    time.Time
}

func NewWindow(
	ownerID uuid.UUID,
	date time.Time,
	startClock, endClock string,
	slotDuration int,
	timezone string,
	notes *string,
) (*Window, error) {
	startMin, err := scheduling.MinutesFromClock(startClock)
	if err != nil {
		return nil, err
	}
	endMin, err := scheduling.MinutesFromClock(endClock)
	if err != nil {
		return nil, err
	}
	if startMin >= endMin {
		return nil, ErrInvalidTimeRange
	}

	if slotDuration == 0 {
		slotDuration = DefaultSlotDuration
	}
	if slotDuration < 0 {
		return nil, ErrInvalidSlotDuration
	}

	tz := strings.TrimSpace(timezone)
	if tz == "" {
		tz = DefaultTimezone
	}

	return &Window{
		id:           uuid.New(),
		ownerID:      ownerID,
		date:         truncateToDate(date),
		startMin:     startMin,
		endMin:       endMin,
		slotDuration: slotDuration,
		isActive:     true,
		timezone:     tz,
		notes:        notes,
	}, nil
}

func ReconstructWindow(
	id, ownerID uuid.UUID,
	date time.Time,
	startMin, endMin, slotDuration int,
	isActive bool,
	timezone string,
	notes *string,
	createdAt, updatedAt time.Time,
) *Window {
	return &Window{
		id:           id,
		ownerID:      ownerID,
		date:         truncateToDate(date),
		startMin:     startMin,
		endMin:       endMin,
		slotDuration: slotDuration,
		isActive:     isActive,
		timezone:     timezone,
		notes:        notes,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// Slots slices the window into bookable units using its own slot duration.
func (w *Window) Slots() []scheduling.SlotBounds {
	return scheduling.SlotsInWindow(w.startMin, w.endMin, w.slotDuration)
}

func (w *Window) BelongsTo(ownerID uuid.UUID) bool {
	return w.ownerID == ownerID
}

func (w *Window) ID() uuid.UUID        { return w.id }
func (w *Window) OwnerID() uuid.UUID   { return w.ownerID }
func (w *Window) Date() time.Time      { return w.date }
func (w *Window) StartMin() int        { return w.startMin }
func (w *Window) EndMin() int          { return w.endMin }
func (w *Window) StartClock() string   { return scheduling.ClockFromMinutes(w.startMin) }
func (w *Window) EndClock() string     { return scheduling.ClockFromMinutes(w.endMin) }
func (w *Window) SlotDuration() int    { return w.slotDuration }
func (w *Window) IsActive() bool       { return w.isActive }
func (w *Window) Timezone() string     { return w.timezone }
func (w *Window) Notes() *string       { return w.notes }
func (w *Window) CreatedAt() time.Time { return w.createdAt }
func (w *Window) UpdatedAt() time.Time { return w.updatedAt }

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
