package shared

import (
	"context"
	"time"

	"immoview/internal/domain/appointment"
	"immoview/internal/domain/availability"
	"immoview/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Appointments() AppointmentRepository
	Windows() WindowRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	PropertyByID(ctx context.Context, id uuid.UUID) (*PropertySnapshot, error)
	AppointmentByID(ctx context.Context, id uuid.UUID) (*AppointmentSnapshot, error)
	WindowByID(ctx context.Context, id uuid.UUID) (*WindowSnapshot, error)
	BuyerProfileByUserID(ctx context.Context, userID uuid.UUID) (*BuyerProfileSnapshot, error)
}

// Minimal snapshots for command-side validation reads.

type PropertySnapshot struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Title   string
	Status  string
}

type AppointmentSnapshot struct {
	ID              uuid.UUID
	PropertyID      uuid.UUID
	BuyerID         uuid.UUID
	OwnerID         uuid.UUID
	ScheduledAt     time.Time
	DurationMinutes int
	Status          string
	// Status timestamps ride along so that a later transition does not wipe
	// out the ones already stamped.
	ConfirmedAt *time.Time
	CancelledAt *time.Time
}

type WindowSnapshot struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	Date         time.Time
	StartMin     int
	EndMin       int
	SlotDuration int
	IsActive     bool
	Timezone     string
	Notes        *string
}

// BuyerProfileSnapshot is what gets frozen into an appointment at booking
// time, so owners still see the buyer's qualification as it was then.
// The qualification fields are optional on the profile itself; absent ones
// are kept as JSON nulls rather than zero values.
type BuyerProfileSnapshot struct {
	EquityBand        *string   `json:"equity_band"`
	Timeline          *string   `json:"timeline"`
	Purpose           *string   `json:"purpose"`
	HouseholdSize     *int      `json:"household_size"`
	SchufaAvailable   bool      `json:"schufa_available"`
	FinancingVerified bool      `json:"financing_verified"`
	SnapshotDate      time.Time `json:"snapshot_date"`
}

type AppointmentRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, appt *appointment.Appointment) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, dbtx db.DBTX, appt *appointment.Appointment) error
	SetBuyerNotes(ctx context.Context, dbtx db.DBTX, id uuid.UUID, notes *string) error
	SetOwnerNotes(ctx context.Context, dbtx db.DBTX, id uuid.UUID, notes *string) error
	Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error
	// LockConfirmedOverlapping takes FOR UPDATE row locks on the property's
	// confirmed appointments that overlap [start, end) and returns how many
	// were found. Must run inside a write transaction.
	LockConfirmedOverlapping(ctx context.Context, dbtx db.DBTX, propertyID uuid.UUID, start, end time.Time) (int, error)
}

type WindowRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, w *availability.Window) (uuid.UUID, error)
	// Update and Delete are gated on ownership in the WHERE clause and
	// report whether any row matched.
	Update(ctx context.Context, dbtx db.DBTX, w *availability.Window) (bool, error)
	Delete(ctx context.Context, dbtx db.DBTX, id, ownerID uuid.UUID) (bool, error)
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) error
}
