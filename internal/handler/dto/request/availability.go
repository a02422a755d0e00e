package request

import (
	"time"

	"immoview/internal/usecase/commands"
)

const dateLayout = "2006-01-02"

type CreateWindowRequest struct {
	Date         string  `json:"date" binding:"required"`
	StartTime    string  `json:"start_time" binding:"required"`
	EndTime      string  `json:"end_time" binding:"required"`
	SlotDuration int     `json:"slot_duration"`
	Timezone     string  `json:"timezone"`
	Notes        *string `json:"notes,omitempty"`
}

func (r CreateWindowRequest) ToCommand() (commands.CreateWindowRequest, error) {
	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return commands.CreateWindowRequest{}, err
	}

	return commands.CreateWindowRequest{
		Date:         date,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		SlotDuration: r.SlotDuration,
		Timezone:     r.Timezone,
		Notes:        r.Notes,
	}, nil
}

type UpdateWindowRequest struct {
	Date         *string `json:"date,omitempty"`
	StartTime    *string `json:"start_time,omitempty"`
	EndTime      *string `json:"end_time,omitempty"`
	SlotDuration *int    `json:"slot_duration,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
	Timezone     *string `json:"timezone,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

func (r UpdateWindowRequest) ToCommand() (commands.UpdateWindowRequest, error) {
	cmd := commands.UpdateWindowRequest{
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		SlotDuration: r.SlotDuration,
		IsActive:     r.IsActive,
		Timezone:     r.Timezone,
		Notes:        r.Notes,
	}

	if r.Date != nil {
		date, err := time.Parse(dateLayout, *r.Date)
		if err != nil {
			return commands.UpdateWindowRequest{}, err
		}
		cmd.Date = &date
	}

	return cmd, nil
}
