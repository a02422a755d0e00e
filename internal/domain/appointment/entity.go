package appointment

import (
	"time"

	"immoview/internal/pkg/errs"

	"github.com/google/uuid"
)

const DefaultDurationMinutes = 60

var ErrBuyerIsOwner = errs.New("buyer and owner must be different users")

// Appointment is a viewing request by a buyer against a property. It is born
// as requested and walks the status state machine from there; the scheduled
// interval is [scheduledAt, scheduledAt+duration).
type Appointment struct {
	id              uuid.UUID
	propertyID      uuid.UUID
	buyerID         uuid.UUID
	ownerID         uuid.UUID
	scheduledAt     time.Time
	durationMinutes int
	apptType        Type
	status          Status
	notes           *string // free text supplied with the booking request
	buyerNotes      *string
	ownerNotes      *string
	externalCalID   *string
	externalEventID *string
	buyerSnapshot   []byte // serialized buyer profile at booking time, may be nil
	confirmedAt     *time.Time
	cancelledAt     *time.Time
	createdAt       time.Time
	updatedAt       time.Time
}

func NewAppointment(
	propertyID, buyerID, ownerID uuid.UUID,
	scheduledAt time.Time,
	durationMinutes int,
	apptType Type,
	notes *string,
	buyerSnapshot []byte,
) (*Appointment, error) {
	if buyerID == ownerID {
		return nil, ErrBuyerIsOwner
	}
	if durationMinutes == 0 {
		durationMinutes = DefaultDurationMinutes
	}
	if durationMinutes < 0 {
		return nil, ErrInvalidDuration
	}
	if apptType == "" {
		apptType = DefaultType
	} else if _, err := NewType(apptType.String()); err != nil {
		return nil, err
	}

	return &Appointment{
		id:              uuid.New(),
		propertyID:      propertyID,
		buyerID:         buyerID,
		ownerID:         ownerID,
		scheduledAt:     scheduledAt.UTC(),
		durationMinutes: durationMinutes,
		apptType:        apptType,
		status:          StatusRequested,
		notes:           notes,
		buyerSnapshot:   buyerSnapshot,
	}, nil
}

func ReconstructAppointment(
	id, propertyID, buyerID, ownerID uuid.UUID,
	scheduledAt time.Time,
	durationMinutes int,
	apptType Type,
	status Status,
	notes, buyerNotes, ownerNotes *string,
	externalCalID, externalEventID *string,
	buyerSnapshot []byte,
	confirmedAt, cancelledAt *time.Time,
	createdAt, updatedAt time.Time,
) *Appointment {
	return &Appointment{
		id:              id,
		propertyID:      propertyID,
		buyerID:         buyerID,
		ownerID:         ownerID,
		scheduledAt:     scheduledAt,
		durationMinutes: durationMinutes,
		apptType:        apptType,
		status:          status,
		notes:           notes,
		buyerNotes:      buyerNotes,
		ownerNotes:      ownerNotes,
		externalCalID:   externalCalID,
		externalEventID: externalEventID,
		buyerSnapshot:   buyerSnapshot,
		confirmedAt:     confirmedAt,
		cancelledAt:     cancelledAt,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// EndsAt is the exclusive end of the scheduled interval.
func (a *Appointment) EndsAt() time.Time {
	return a.scheduledAt.Add(time.Duration(a.durationMinutes) * time.Minute)
}

// TransitionTo moves the appointment to next, stamping confirmedAt or
// cancelledAt as appropriate. now comes from the caller's clock.
func (a *Appointment) TransitionTo(next Status, now time.Time) error {
	if !a.status.CanTransitionTo(next) {
		return errs.Mark(
			errs.New("cannot transition from "+a.status.String()+" to "+next.String()),
			ErrInvalidTransition,
		)
	}

	a.status = next
	switch next {
	case StatusConfirmed:
		a.confirmedAt = &now
	case StatusCancelled:
		a.cancelledAt = &now
	}
	return nil
}

func (a *Appointment) SetBuyerNotes(notes *string) { a.buyerNotes = notes }
func (a *Appointment) SetOwnerNotes(notes *string) { a.ownerNotes = notes }

func (a *Appointment) AttachExternalEvent(calendarID, eventID *string) {
	a.externalCalID = calendarID
	a.externalEventID = eventID
}

func (a *Appointment) IsRequested() bool { return a.status == StatusRequested }
func (a *Appointment) IsConfirmed() bool { return a.status == StatusConfirmed }

func (a *Appointment) BookedBy(buyerID uuid.UUID) bool { return a.buyerID == buyerID }
func (a *Appointment) HostedBy(ownerID uuid.UUID) bool { return a.ownerID == ownerID }

func (a *Appointment) ID() uuid.UUID            { return a.id }
func (a *Appointment) PropertyID() uuid.UUID    { return a.propertyID }
func (a *Appointment) BuyerID() uuid.UUID       { return a.buyerID }
func (a *Appointment) OwnerID() uuid.UUID       { return a.ownerID }
func (a *Appointment) ScheduledAt() time.Time   { return a.scheduledAt }
func (a *Appointment) DurationMinutes() int     { return a.durationMinutes }
func (a *Appointment) Type() Type               { return a.apptType }
func (a *Appointment) Status() Status           { return a.status }
func (a *Appointment) Notes() *string           { return a.notes }
func (a *Appointment) BuyerNotes() *string      { return a.buyerNotes }
func (a *Appointment) OwnerNotes() *string      { return a.ownerNotes }
func (a *Appointment) ExternalCalID() *string   { return a.externalCalID }
func (a *Appointment) ExternalEventID() *string { return a.externalEventID }
func (a *Appointment) BuyerSnapshot() []byte    { return a.buyerSnapshot }
func (a *Appointment) ConfirmedAt() *time.Time  { return a.confirmedAt }
func (a *Appointment) CancelledAt() *time.Time  { return a.cancelledAt }
func (a *Appointment) CreatedAt() time.Time     { return a.createdAt }
func (a *Appointment) UpdatedAt() time.Time     { return a.updatedAt }
