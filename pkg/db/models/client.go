package models

import (
	"time"

	"github.com/google/uuid"
)

// Client represents a tailoring relationship. It is owned by the tailor in
// tailor_id and optionally linked to a registered client account through
// client_user_id; the link column is unique so one account maps to at most
// one relationship.
type Client struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	TailorID     *uuid.UUID `gorm:"column:tailor_id;type:uuid"`
	ClientUserID *uuid.UUID `gorm:"column:client_user_id;type:uuid;uniqueIndex"`
	StoreName    *string    `gorm:"column:store_name"`
	Notes        *string    `gorm:"column:notes"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	ClientUser   *User         `gorm:"foreignKey:ClientUserID"`
	Measurements []Measurement `gorm:"foreignKey:ClientID"`
	Appointments []Appointment `gorm:"foreignKey:ClientID"`
}

// OwnedByTailor reports whether the given tailor owns this relationship.
func (c *Client) OwnedByTailor(tailorID uuid.UUID) bool {
	return c != nil && c.TailorID != nil && *c.TailorID == tailorID
}

// LinkedToUser reports whether the given registered client account is linked
// to this relationship.
func (c *Client) LinkedToUser(userID uuid.UUID) bool {
	return c != nil && c.ClientUserID != nil && *c.ClientUserID == userID
}
