package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sartorlabs/sartor-backend/pkg/enums"
)

// Appointment belongs to exactly one client relationship and is mutable only
// by the owning tailor.
type Appointment struct {
	ID        uuid.UUID               `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ClientID  uuid.UUID               `gorm:"column:client_id;type:uuid;not null;index"`
	Title     string                  `gorm:"column:title;not null"`
	Date      time.Time               `gorm:"column:date;not null"`
	Location  *string                 `gorm:"column:location"`
	Notes     *string                 `gorm:"column:notes"`
	Status    enums.AppointmentStatus `gorm:"column:status;type:text;not null;default:'scheduled'"`
	CreatedAt time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
