package timers

import (
	"time"

	"github.com/google/uuid"

	"github.com/sartorlabs/sartor-backend/pkg/db/models"
)

// StartTimerRequest opens a billable timer against a client.
type StartTimerRequest struct {
	ClientID    uuid.UUID `json:"client_id" validate:"required"`
	Description *string   `json:"description" validate:"omitempty,max=500"`
}

// StopTimerRequest closes a running timer. EndTime defaults to now.
type StopTimerRequest struct {
	TimerID uuid.UUID  `json:"timer_id" validate:"required"`
	EndTime *time.Time `json:"end_time"`
}

// TimerDTO is the transport shape of a billable timer.
type TimerDTO struct {
	ID              uuid.UUID  `json:"id"`
	ClientID        uuid.UUID  `json:"client_id"`
	TailorID        uuid.UUID  `json:"tailor_id"`
	Description     *string    `json:"description,omitempty"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func FromModel(t *models.Timer) *TimerDTO {
	if t == nil {
		return nil
	}
	return &TimerDTO{
		ID:              t.ID,
		ClientID:        t.ClientID,
		TailorID:        t.TailorID,
		Description:     t.Description,
		StartTime:       t.StartTime,
		EndTime:         t.EndTime,
		DurationMinutes: t.DurationMinutes,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// FromModels maps a list of timers.
func FromModels(rows []models.Timer) []TimerDTO {
	out := make([]TimerDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
