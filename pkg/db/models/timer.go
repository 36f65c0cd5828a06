package models

import (
	"time"

	"github.com/google/uuid"
)

// Timer is one stretch of billable work a tailor logs against a client.
// A partial unique index on (client_id, tailor_id) where end_time is null
// keeps at most one timer open per pair; the service layer surfaces the
// violation as a conflict.
type Timer struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ClientID        uuid.UUID  `gorm:"column:client_id;type:uuid;not null;index"`
	TailorID        uuid.UUID  `gorm:"column:tailor_id;type:uuid;not null;index"`
	Description     *string    `gorm:"column:description"`
	StartTime       time.Time  `gorm:"column:start_time;not null"`
	EndTime         *time.Time `gorm:"column:end_time"`
	DurationMinutes *int       `gorm:"column:duration_minutes"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// Open reports whether the timer is still running.
func (t *Timer) Open() bool {
	return t != nil && t.EndTime == nil
}
