package queries

import (
	"context"
	"time"

	"immoview/internal/domain/scheduling"
	"immoview/internal/domain/user"
	"immoview/internal/infra"
	"immoview/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrAppointmentNotFound = errs.New("appointment not found")
	ErrAppointmentAccess   = errs.New("appointment access denied")
)

type AppointmentQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*AppointmentView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, role user.Role) ([]*AppointmentView, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*AppointmentView, error)
	PropertyTimeSlots(ctx context.Context, propertyID uuid.UUID, date time.Time) ([]*TimeSlotView, error)
}

type AppointmentViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AppointmentView, error)
	FindByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*AppointmentView, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*AppointmentView, error)
	FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]*AppointmentView, error)
	// FindConfirmedByPropertyOnDate ignores requested appointments; only
	// confirmed ones block the property slot listing.
	FindConfirmedByPropertyOnDate(ctx context.Context, propertyID uuid.UUID, date time.Time) ([]*BlockingAppointment, error)
}

// BusinessHours bounds the fixed property slot listing.
type BusinessHours struct {
	StartHour int
	EndHour   int
}

type appointmentQueriesImpl struct {
	repo  AppointmentViewRepo
	hours BusinessHours
}

func NewAppointmentQueries(repo AppointmentViewRepo, hours BusinessHours) AppointmentQueries {
	return &appointmentQueriesImpl{
		repo:  repo,
		hours: hours,
	}
}

func (q *appointmentQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*AppointmentView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	if actorRole != user.RoleAdmin && view.BuyerID != actorID && view.OwnerID != actorID {
		return nil, ErrAppointmentAccess
	}

	return view, nil
}

// ListByUser returns the user's appointments in the requested role, newest
// scheduled first.
func (q *appointmentQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, role user.Role) ([]*AppointmentView, error) {
	if role == user.RoleOwner {
		return q.repo.FindByOwner(ctx, userID)
	}
	return q.repo.FindByBuyer(ctx, userID)
}

// ListByProperty returns a property's appointments oldest scheduled first.
func (q *appointmentQueriesImpl) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*AppointmentView, error) {
	return q.repo.FindByProperty(ctx, propertyID)
}

// PropertyTimeSlots lists the free hourly slots within business hours for a
// property on a date. Unlike the owner slot generator, booked slots are
// dropped from the result rather than flagged.
func (q *appointmentQueriesImpl) PropertyTimeSlots(ctx context.Context, propertyID uuid.UUID, date time.Time) ([]*TimeSlotView, error) {
	confirmed, err := q.repo.FindConfirmedByPropertyOnDate(ctx, propertyID, date)
	if err != nil {
		return nil, err
	}

	slots := []*TimeSlotView{}
	for _, s := range scheduling.SlotsInWindow(q.hours.StartHour*60, q.hours.EndHour*60, 60) {
		slotStart, slotEnd := scheduling.SlotTimes(date, s)

		booked := false
		for _, b := range confirmed {
			apptEnd := b.ScheduledAt.Add(time.Duration(b.DurationMinutes) * time.Minute)
			if scheduling.Overlaps(slotStart, slotEnd, b.ScheduledAt, apptEnd) {
				booked = true
				break
			}
		}
		if booked {
			continue
		}

		slots = append(slots, &TimeSlotView{
			StartTime: s.StartClock(),
			EndTime:   s.EndClock(),
			Available: true,
			Formatted: slotStart.Format("3:04 PM"),
		})
	}

	return slots, nil
}
