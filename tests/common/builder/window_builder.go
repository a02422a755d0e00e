//go:build unit || e2e

package builder

import (
	"time"

	"immoview/internal/domain/availability"
	reqdto "immoview/internal/handler/dto/request"
	"immoview/internal/usecase/queries"
	"immoview/internal/usecase/shared"

	"github.com/google/uuid"
)

type WindowBuilder struct {
	OwnerID      uuid.UUID
	Date         time.Time
	StartTime    string
	EndTime      string
	SlotDuration int
	IsActive     bool
	Timezone     string
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewWindowBuilder() *WindowBuilder {
	now := time.Now().UTC()
	return &WindowBuilder{
		OwnerID:      uuid.New(),
		Date:         time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		StartTime:    "09:00",
		EndTime:      "12:00",
		SlotDuration: 30,
		IsActive:     true,
		Timezone:     "Europe/Berlin",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (b *WindowBuilder) With(mutate func(*WindowBuilder)) *WindowBuilder {
	mutate(b)
	return b
}

func (b *WindowBuilder) BuildDomain() (*availability.Window, error) {
	return availability.NewWindow(b.OwnerID, b.Date, b.StartTime, b.EndTime, b.SlotDuration, b.Timezone, b.Notes)
}

func (b *WindowBuilder) BuildCreateRequestDTO() reqdto.CreateWindowRequest {
	return reqdto.CreateWindowRequest{
		Date:         b.Date.Format("2006-01-02"),
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		SlotDuration: b.SlotDuration,
		Timezone:     b.Timezone,
		Notes:        b.Notes,
	}
}

func (b *WindowBuilder) BuildUpdateRequestDTO() reqdto.UpdateWindowRequest {
	start := b.StartTime
	end := b.EndTime
	return reqdto.UpdateWindowRequest{
		StartTime: &start,
		EndTime:   &end,
	}
}

func (b *WindowBuilder) BuildView() *queries.WindowView {
	return &queries.WindowView{
		ID:           uuid.New(),
		OwnerID:      b.OwnerID,
		Date:         b.Date.Format("2006-01-02"),
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		SlotDuration: b.SlotDuration,
		IsActive:     b.IsActive,
		Timezone:     b.Timezone,
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func (b *WindowBuilder) BuildSnapshot() *shared.WindowSnapshot {
	startMin := clockToMinutes(b.StartTime)
	endMin := clockToMinutes(b.EndTime)
	return &shared.WindowSnapshot{
		ID:           uuid.New(),
		OwnerID:      b.OwnerID,
		Date:         b.Date,
		StartMin:     startMin,
		EndMin:       endMin,
		SlotDuration: b.SlotDuration,
		IsActive:     b.IsActive,
		Timezone:     b.Timezone,
		Notes:        b.Notes,
	}
}

func clockToMinutes(clock string) int {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}
