package request

import (
	"time"

	"immoview/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateAppointmentRequest struct {
	PropertyID  uuid.UUID `json:"property_id" binding:"required"`
	OwnerID     uuid.UUID `json:"owner_id" binding:"required"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	Duration    int       `json:"duration"`
	Type        string    `json:"type"`
	Notes       *string   `json:"notes,omitempty"`
}

func (r CreateAppointmentRequest) ToCommand() commands.CreateAppointmentRequest {
	return commands.CreateAppointmentRequest{
		PropertyID:      r.PropertyID,
		OwnerID:         r.OwnerID,
		ScheduledAt:     r.ScheduledAt,
		DurationMinutes: r.Duration,
		Type:            r.Type,
		Notes:           r.Notes,
	}
}

type UpdateAppointmentStatusRequest struct {
	Status string  `json:"status" binding:"required"`
	Notes  *string `json:"notes,omitempty"`
}

type UpdateAppointmentNotesRequest struct {
	NoteType string  `json:"note_type"`
	Notes    *string `json:"notes"`
}
