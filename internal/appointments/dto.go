package appointments

import (
	"time"

	"github.com/google/uuid"

	"github.com/sartorlabs/sartor-backend/pkg/db/models"
	"github.com/sartorlabs/sartor-backend/pkg/enums"
)

// CreateAppointmentRequest schedules an appointment for a client.
type CreateAppointmentRequest struct {
	ClientID uuid.UUID `json:"client_id" validate:"required"`
	Title    string    `json:"title" validate:"required,max=200"`
	Date     time.Time `json:"date" validate:"required"`
	Location *string   `json:"location" validate:"omitempty,max=200"`
	Notes    *string   `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateAppointmentRequest carries a partial appointment edit. At least one
// field must be present.
type UpdateAppointmentRequest struct {
	Title    *string    `json:"title" validate:"omitempty,max=200"`
	Date     *time.Time `json:"date"`
	Location *string    `json:"location" validate:"omitempty,max=200"`
	Notes    *string    `json:"notes" validate:"omitempty,max=2000"`
	Status   *string    `json:"status" validate:"omitempty,oneof=scheduled completed canceled"`
}

// Empty reports whether the request carries no mutable field.
func (r UpdateAppointmentRequest) Empty() bool {
	return r.Title == nil && r.Date == nil && r.Location == nil && r.Notes == nil && r.Status == nil
}

// AppointmentDTO is the transport shape of an appointment.
type AppointmentDTO struct {
	ID        uuid.UUID               `json:"id"`
	ClientID  uuid.UUID               `json:"client_id"`
	Title     string                  `json:"title"`
	Date      time.Time               `json:"date"`
	Location  *string                 `json:"location,omitempty"`
	Notes     *string                 `json:"notes,omitempty"`
	Status    enums.AppointmentStatus `json:"status"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

func FromModel(a *models.Appointment) *AppointmentDTO {
	if a == nil {
		return nil
	}
	return &AppointmentDTO{
		ID:        a.ID,
		ClientID:  a.ClientID,
		Title:     a.Title,
		Date:      a.Date,
		Location:  a.Location,
		Notes:     a.Notes,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// FromModels maps a list of appointments.
func FromModels(rows []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
