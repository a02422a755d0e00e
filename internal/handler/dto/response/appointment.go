package response

import (
	"encoding/json"
	"time"

	"immoview/internal/usecase/queries"

	"github.com/google/uuid"
)

type AppointmentResponse struct {
	ID                   uuid.UUID       `json:"id"`
	PropertyID           uuid.UUID       `json:"propertyId"`
	PropertyTitle        string          `json:"propertyTitle"`
	BuyerID              uuid.UUID       `json:"buyerId"`
	OwnerID              uuid.UUID       `json:"ownerId"`
	ScheduledAt          time.Time       `json:"scheduledAt"`
	Duration             int             `json:"duration"`
	Type                 string          `json:"type"`
	Status               string          `json:"status"`
	Notes                *string         `json:"notes,omitempty"`
	BuyerNotes           *string         `json:"buyerNotes,omitempty"`
	OwnerNotes           *string         `json:"ownerNotes,omitempty"`
	ExternalCalendarID   *string         `json:"externalCalendarId,omitempty"`
	ExternalEventID      *string         `json:"externalEventId,omitempty"`
	BuyerProfileSnapshot json.RawMessage `json:"buyerProfileSnapshot,omitempty"`
	ConfirmedAt          *time.Time      `json:"confirmedAt,omitempty"`
	CancelledAt          *time.Time      `json:"cancelledAt,omitempty"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

func FromAppointmentView(rm *queries.AppointmentView) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                   rm.ID,
		PropertyID:           rm.PropertyID,
		PropertyTitle:        rm.PropertyTitle,
		BuyerID:              rm.BuyerID,
		OwnerID:              rm.OwnerID,
		ScheduledAt:          rm.ScheduledAt,
		Duration:             rm.DurationMinutes,
		Type:                 rm.Type,
		Status:               rm.Status,
		Notes:                rm.Notes,
		BuyerNotes:           rm.BuyerNotes,
		OwnerNotes:           rm.OwnerNotes,
		ExternalCalendarID:   rm.ExternalCalendarID,
		ExternalEventID:      rm.ExternalEventID,
		BuyerProfileSnapshot: rm.BuyerProfileSnapshot,
		ConfirmedAt:          rm.ConfirmedAt,
		CancelledAt:          rm.CancelledAt,
		CreatedAt:            rm.CreatedAt,
		UpdatedAt:            rm.UpdatedAt,
	}
}

type AppointmentCreatedResponse struct {
	ID uuid.UUID `json:"id"`
}
