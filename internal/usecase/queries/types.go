package queries

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type WindowView struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Date         string    `json:"date"` // "2006-01-02"
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	SlotDuration int       `json:"slot_duration"`
	IsActive     bool      `json:"is_active"`
	Timezone     string    `json:"timezone"`
	Notes        *string   `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TimeSlotView is one generated slot for an owner's date. Booked slots stay
// in the sequence with Available set to false. The property slot listing
// additionally carries a 12-hour display label ("9:00 AM").
type TimeSlotView struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
	Formatted string `json:"formatted,omitempty"`
}

type AppointmentView struct {
	ID                   uuid.UUID       `json:"id"`
	PropertyID           uuid.UUID       `json:"property_id"`
	PropertyTitle        string          `json:"property_title"`
	BuyerID              uuid.UUID       `json:"buyer_id"`
	OwnerID              uuid.UUID       `json:"owner_id"`
	ScheduledAt          time.Time       `json:"scheduled_at"`
	DurationMinutes      int             `json:"duration_minutes"`
	Type                 string          `json:"type"`
	Status               string          `json:"status"`
	Notes                *string         `json:"notes,omitempty"`
	BuyerNotes           *string         `json:"buyer_notes,omitempty"`
	OwnerNotes           *string         `json:"owner_notes,omitempty"`
	ExternalCalendarID   *string         `json:"external_calendar_id,omitempty"`
	ExternalEventID      *string         `json:"external_event_id,omitempty"`
	BuyerProfileSnapshot json.RawMessage `json:"buyer_profile_snapshot,omitempty"`
	ConfirmedAt          *time.Time      `json:"confirmed_at,omitempty"`
	CancelledAt          *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}
