package response

import (
	"time"

	"immoview/internal/usecase/queries"

	"github.com/google/uuid"
)

type WindowResponse struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"ownerId"`
	Date         string    `json:"date"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	SlotDuration int       `json:"slotDuration"`
	IsActive     bool      `json:"isActive"`
	Timezone     string    `json:"timezone"`
	Notes        *string   `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func FromWindowView(rm *queries.WindowView) *WindowResponse {
	return &WindowResponse{
		ID:           rm.ID,
		OwnerID:      rm.OwnerID,
		Date:         rm.Date,
		StartTime:    rm.StartTime,
		EndTime:      rm.EndTime,
		SlotDuration: rm.SlotDuration,
		IsActive:     rm.IsActive,
		Timezone:     rm.Timezone,
		Notes:        rm.Notes,
		CreatedAt:    rm.CreatedAt,
		UpdatedAt:    rm.UpdatedAt,
	}
}

type WindowCreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

type TimeSlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"isAvailable"`
	// Display label for property slot listings; empty for owner slots.
	Formatted string `json:"formatted,omitempty"`
}

func FromTimeSlotView(rm *queries.TimeSlotView) *TimeSlotResponse {
	return &TimeSlotResponse{
		StartTime: rm.StartTime,
		EndTime:   rm.EndTime,
		Available: rm.Available,
		Formatted: rm.Formatted,
	}
}

type AvailableDatesResponse struct {
	Dates []string `json:"dates"`
}
