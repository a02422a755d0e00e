//go:build unit

package commands_test

import (
	"context"
	"time"

	"immoview/internal/domain/appointment"
	"immoview/internal/domain/availability"
	"immoview/internal/infra"
	"immoview/internal/infra/db"
	"immoview/internal/pkg/errs"
	"immoview/internal/usecase/shared"

	"github.com/google/uuid"
)

// Hand-rolled fakes for the unit of work and its repositories. The fake
// transaction runs the callback directly with no retry loop so tests observe
// exactly one execution.

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, errs.New("no rows"), infra.KindNotFound)
}

type fakeReads struct {
	property       *shared.PropertySnapshot
	propertyErr    error
	appointment    *shared.AppointmentSnapshot
	appointmentErr error
	window         *shared.WindowSnapshot
	windowErr      error
	profile        *shared.BuyerProfileSnapshot
	profileErr     error
}

func (f *fakeReads) PropertyByID(_ context.Context, _ uuid.UUID) (*shared.PropertySnapshot, error) {
	if f.propertyErr != nil {
		return nil, f.propertyErr
	}
	if f.property == nil {
		return nil, notFound("property not found")
	}
	return f.property, nil
}

func (f *fakeReads) AppointmentByID(_ context.Context, _ uuid.UUID) (*shared.AppointmentSnapshot, error) {
	if f.appointmentErr != nil {
		return nil, f.appointmentErr
	}
	if f.appointment == nil {
		return nil, notFound("appointment not found")
	}
	return f.appointment, nil
}

func (f *fakeReads) WindowByID(_ context.Context, _ uuid.UUID) (*shared.WindowSnapshot, error) {
	if f.windowErr != nil {
		return nil, f.windowErr
	}
	if f.window == nil {
		return nil, notFound("window not found")
	}
	return f.window, nil
}

func (f *fakeReads) BuyerProfileByUserID(_ context.Context, _ uuid.UUID) (*shared.BuyerProfileSnapshot, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	if f.profile == nil {
		return nil, notFound("buyer profile not found")
	}
	return f.profile, nil
}

type fakeAppointmentRepo struct {
	conflicts int
	lockErr   error

	created   *appointment.Appointment
	createErr error

	statusUpdated *appointment.Appointment

	buyerNotes *string
	ownerNotes *string
	notesSet   string

	deletedID uuid.UUID
}

func (f *fakeAppointmentRepo) Create(_ context.Context, _ db.DBTX, appt *appointment.Appointment) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	f.created = appt
	return appt.ID(), nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, _ db.DBTX, appt *appointment.Appointment) error {
	f.statusUpdated = appt
	return nil
}

func (f *fakeAppointmentRepo) SetBuyerNotes(_ context.Context, _ db.DBTX, _ uuid.UUID, notes *string) error {
	f.buyerNotes = notes
	f.notesSet = "buyer"
	return nil
}

func (f *fakeAppointmentRepo) SetOwnerNotes(_ context.Context, _ db.DBTX, _ uuid.UUID, notes *string) error {
	f.ownerNotes = notes
	f.notesSet = "owner"
	return nil
}

func (f *fakeAppointmentRepo) Delete(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	f.deletedID = id
	return nil
}

func (f *fakeAppointmentRepo) LockConfirmedOverlapping(_ context.Context, _ db.DBTX, _ uuid.UUID, _, _ time.Time) (int, error) {
	if f.lockErr != nil {
		return 0, f.lockErr
	}
	return f.conflicts, nil
}

type fakeWindowRepo struct {
	createErr error
	created   *availability.Window
	createdID uuid.UUID

	updated  *availability.Window
	updateOK bool

	deleteOK  bool
	deletedID uuid.UUID
}

func (f *fakeWindowRepo) Create(_ context.Context, _ db.DBTX, w *availability.Window) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	f.created = w
	f.createdID = w.ID()
	return w.ID(), nil
}

func (f *fakeWindowRepo) Update(_ context.Context, _ db.DBTX, w *availability.Window) (bool, error) {
	f.updated = w
	return f.updateOK, nil
}

func (f *fakeWindowRepo) Delete(_ context.Context, _ db.DBTX, id, _ uuid.UUID) (bool, error) {
	f.deletedID = id
	return f.deleteOK, nil
}

type fakeUserRepo struct {
	lastLogin []uuid.UUID
	err       error
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, _ db.DBTX, userID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.lastLogin = append(f.lastLogin, userID)
	return nil
}

type fakeTx struct {
	appointments *fakeAppointmentRepo
	windows      *fakeWindowRepo
	users        *fakeUserRepo
	reads        *fakeReads
}

func (f *fakeTx) Appointments() shared.AppointmentRepository { return f.appointments }
func (f *fakeTx) Windows() shared.WindowRepository           { return f.windows }
func (f *fakeTx) Users() shared.UserRepository               { return f.users }
func (f *fakeTx) Reads() shared.CommandReads                 { return f.reads }
func (f *fakeTx) DB() db.DBTX                                { return nil }

type fakeUow struct {
	tx *fakeTx
}

func newFakeUow() *fakeUow {
	return &fakeUow{tx: &fakeTx{
		appointments: &fakeAppointmentRepo{},
		windows:      &fakeWindowRepo{},
		users:        &fakeUserRepo{},
		reads:        &fakeReads{},
	}}
}

func (f *fakeUow) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, f.tx)
}

func (f *fakeUow) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (f *fakeUow) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (f *fakeUow) CommandReads() shared.CommandReads {
	return f.tx.reads
}
