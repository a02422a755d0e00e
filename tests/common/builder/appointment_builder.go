//go:build unit || e2e

package builder

import (
	"time"

	"immoview/internal/domain/appointment"
	reqdto "immoview/internal/handler/dto/request"
	"immoview/internal/usecase/queries"
	"immoview/internal/usecase/shared"

	"github.com/google/uuid"
)

type AppointmentBuilder struct {
	PropertyID    uuid.UUID
	PropertyTitle string
	BuyerID       uuid.UUID
	OwnerID       uuid.UUID
	ScheduledAt   time.Time
	Duration      int
	Type          string
	Status        string
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewAppointmentBuilder() *AppointmentBuilder {
	now := time.Now().UTC()
	return &AppointmentBuilder{
		PropertyID:    uuid.New(),
		PropertyTitle: "Altbau apartment, Prenzlauer Berg",
		BuyerID:       uuid.New(),
		OwnerID:       uuid.New(),
		ScheduledAt:   time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
		Duration:      60,
		Type:          "viewing",
		Status:        "requested",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (b *AppointmentBuilder) With(mutate func(*AppointmentBuilder)) *AppointmentBuilder {
	mutate(b)
	return b
}

func (b *AppointmentBuilder) BuildDomain() (*appointment.Appointment, error) {
	return appointment.NewAppointment(
		b.PropertyID, b.BuyerID, b.OwnerID, b.ScheduledAt, b.Duration,
		appointment.Type(b.Type), b.Notes, nil,
	)
}

func (b *AppointmentBuilder) BuildCreateRequestDTO() reqdto.CreateAppointmentRequest {
	return reqdto.CreateAppointmentRequest{
		PropertyID:  b.PropertyID,
		OwnerID:     b.OwnerID,
		ScheduledAt: b.ScheduledAt,
		Duration:    b.Duration,
		Type:        b.Type,
		Notes:       b.Notes,
	}
}

func (b *AppointmentBuilder) BuildView() *queries.AppointmentView {
	return &queries.AppointmentView{
		ID:              uuid.New(),
		PropertyID:      b.PropertyID,
		PropertyTitle:   b.PropertyTitle,
		BuyerID:         b.BuyerID,
		OwnerID:         b.OwnerID,
		ScheduledAt:     b.ScheduledAt,
		DurationMinutes: b.Duration,
		Type:            b.Type,
		Status:          b.Status,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func (b *AppointmentBuilder) BuildSnapshot() *shared.AppointmentSnapshot {
	return &shared.AppointmentSnapshot{
		ID:              uuid.New(),
		PropertyID:      b.PropertyID,
		BuyerID:         b.BuyerID,
		OwnerID:         b.OwnerID,
		ScheduledAt:     b.ScheduledAt,
		DurationMinutes: b.Duration,
		Status:          b.Status,
	}
}

func (b *AppointmentBuilder) BuildPropertySnapshot() *shared.PropertySnapshot {
	return &shared.PropertySnapshot{
		ID:      b.PropertyID,
		OwnerID: b.OwnerID,
		Title:   b.PropertyTitle,
		Status:  "active",
	}
}
