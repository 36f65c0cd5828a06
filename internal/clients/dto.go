package clients

import (
	"time"

	"github.com/google/uuid"

	"github.com/sartorlabs/sartor-backend/pkg/db/models"
)

// ClientDTO is the transport shape for a tailoring relationship, with a few
// summary fields derived from the loaded relations.
type ClientDTO struct {
	ID                    uuid.UUID  `json:"id"`
	TailorID              *uuid.UUID `json:"tailor_id,omitempty"`
	ClientUserID          *uuid.UUID `json:"client_user_id,omitempty"`
	Name                  string     `json:"name"`
	Email                 *string    `json:"email,omitempty"`
	StoreName             *string    `json:"store_name,omitempty"`
	Notes                 *string    `json:"notes,omitempty"`
	LastMeasurementUpdate *time.Time `json:"last_measurement_update,omitempty"`
	NextAppointment       *time.Time `json:"next_appointment,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// ProvisionClientRequest carries a tailor adding a client by email.
type ProvisionClientRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Name      string  `json:"name" validate:"required,max=200"`
	Password  *string `json:"password" validate:"omitempty,min=8,max=128"`
	StoreName *string `json:"store_name" validate:"omitempty,max=200"`
	Notes     *string `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateClientRequest carries a partial edit of the shared profile fields.
type UpdateClientRequest struct {
	StoreName *string `json:"store_name" validate:"omitempty,max=200"`
	Notes     *string `json:"notes" validate:"omitempty,max=2000"`
}

// ProvisionClientResponse returns the provisioned relationship plus the
// generated temporary password when one was created.
type ProvisionClientResponse struct {
	Client            *ClientDTO `json:"client"`
	TemporaryPassword *string    `json:"temporary_password,omitempty"`
}

func FromModel(c *models.Client) *ClientDTO {
	if c == nil {
		return nil
	}

	dto := &ClientDTO{
		ID:           c.ID,
		TailorID:     c.TailorID,
		ClientUserID: c.ClientUserID,
		StoreName:    c.StoreName,
		Notes:        c.Notes,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}

	if c.ClientUser != nil {
		dto.Name = c.ClientUser.Name
		dto.Email = c.ClientUser.Email
	}
	if len(c.Measurements) > 0 {
		updated := c.Measurements[0].UpdatedAt
		dto.LastMeasurementUpdate = &updated
	}
	if len(c.Appointments) > 0 {
		next := c.Appointments[0].Date
		dto.NextAppointment = &next
	}

	return dto
}

// FromModels maps a list of loaded client rows.
func FromModels(rows []models.Client) []ClientDTO {
	out := make([]ClientDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
