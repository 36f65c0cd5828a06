package models

import (
	"time"

	"github.com/google/uuid"
)

// Measurement is a single replace-in-place snapshot, keyed by exactly one of
// client_id (tailor-managed relationship) or user_id (anonymous self-service).
// Both key columns carry unique indexes so each scope holds at most one row.
type Measurement struct {
	ID       uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ClientID *uuid.UUID `gorm:"column:client_id;type:uuid;uniqueIndex"`
	UserID   *uuid.UUID `gorm:"column:user_id;type:uuid;uniqueIndex"`

	Chest       *float64 `gorm:"column:chest"`
	Overarm     *float64 `gorm:"column:overarm"`
	Waist       *float64 `gorm:"column:waist"`
	HipSeat     *float64 `gorm:"column:hip_seat"`
	Neck        *float64 `gorm:"column:neck"`
	Arm         *float64 `gorm:"column:arm"`
	PantOutseam *float64 `gorm:"column:pant_outseam"`
	PantInseam  *float64 `gorm:"column:pant_inseam"`
	CoatInseam  *float64 `gorm:"column:coat_inseam"`
	Height      *float64 `gorm:"column:height"`
	Weight      *float64 `gorm:"column:weight"`

	CoatSize           *string `gorm:"column:coat_size"`
	PantSize           *string `gorm:"column:pant_size"`
	DressShirtSize     *string `gorm:"column:dress_shirt_size"`
	ShoeSize           *string `gorm:"column:shoe_size"`
	MaterialPreference *string `gorm:"column:material_preference"`

	DateTaken   time.Time  `gorm:"column:date_taken;not null;autoCreateTime"`
	UpdatedByID *uuid.UUID `gorm:"column:updated_by_id;type:uuid"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
