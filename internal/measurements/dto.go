package measurements

import (
	"time"

	"github.com/google/uuid"

	"github.com/sartorlabs/sartor-backend/pkg/db/models"
)

// UpsertMeasurementRequest carries a partial measurement write. Nil fields
// never overwrite stored values. The target is either client_id
// (relationship-scoped) or user_id / the caller's anonymous identity
// (self-scoped).
type UpsertMeasurementRequest struct {
	ClientID *uuid.UUID `json:"client_id"`
	UserID   *uuid.UUID `json:"user_id"`

	Chest       *float64 `json:"chest" validate:"omitempty,gt=0"`
	Overarm     *float64 `json:"overarm" validate:"omitempty,gt=0"`
	Waist       *float64 `json:"waist" validate:"omitempty,gt=0"`
	HipSeat     *float64 `json:"hip_seat" validate:"omitempty,gt=0"`
	Neck        *float64 `json:"neck" validate:"omitempty,gt=0"`
	Arm         *float64 `json:"arm" validate:"omitempty,gt=0"`
	PantOutseam *float64 `json:"pant_outseam" validate:"omitempty,gt=0"`
	PantInseam  *float64 `json:"pant_inseam" validate:"omitempty,gt=0"`
	CoatInseam  *float64 `json:"coat_inseam" validate:"omitempty,gt=0"`
	Height      *float64 `json:"height" validate:"omitempty,gt=0"`
	Weight      *float64 `json:"weight" validate:"omitempty,gt=0"`

	CoatSize           *string `json:"coat_size" validate:"omitempty,max=20"`
	PantSize           *string `json:"pant_size" validate:"omitempty,max=20"`
	DressShirtSize     *string `json:"dress_shirt_size" validate:"omitempty,max=20"`
	ShoeSize           *string `json:"shoe_size" validate:"omitempty,max=20"`
	MaterialPreference *string `json:"material_preference" validate:"omitempty,max=200"`

	DateTaken *time.Time `json:"date_taken"`
}

// MeasurementDTO is the transport shape of a stored measurement record.
type MeasurementDTO struct {
	ID       uuid.UUID  `json:"id"`
	ClientID *uuid.UUID `json:"client_id,omitempty"`
	UserID   *uuid.UUID `json:"user_id,omitempty"`

	Chest       *float64 `json:"chest,omitempty"`
	Overarm     *float64 `json:"overarm,omitempty"`
	Waist       *float64 `json:"waist,omitempty"`
	HipSeat     *float64 `json:"hip_seat,omitempty"`
	Neck        *float64 `json:"neck,omitempty"`
	Arm         *float64 `json:"arm,omitempty"`
	PantOutseam *float64 `json:"pant_outseam,omitempty"`
	PantInseam  *float64 `json:"pant_inseam,omitempty"`
	CoatInseam  *float64 `json:"coat_inseam,omitempty"`
	Height      *float64 `json:"height,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`

	CoatSize           *string `json:"coat_size,omitempty"`
	PantSize           *string `json:"pant_size,omitempty"`
	DressShirtSize     *string `json:"dress_shirt_size,omitempty"`
	ShoeSize           *string `json:"shoe_size,omitempty"`
	MaterialPreference *string `json:"material_preference,omitempty"`

	DateTaken   time.Time  `json:"date_taken"`
	UpdatedByID *uuid.UUID `json:"updated_by_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func FromModel(m *models.Measurement) *MeasurementDTO {
	if m == nil {
		return nil
	}
	return &MeasurementDTO{
		ID:                 m.ID,
		ClientID:           m.ClientID,
		UserID:             m.UserID,
		Chest:              m.Chest,
		Overarm:            m.Overarm,
		Waist:              m.Waist,
		HipSeat:            m.HipSeat,
		Neck:               m.Neck,
		Arm:                m.Arm,
		PantOutseam:        m.PantOutseam,
		PantInseam:         m.PantInseam,
		CoatInseam:         m.CoatInseam,
		Height:             m.Height,
		Weight:             m.Weight,
		CoatSize:           m.CoatSize,
		PantSize:           m.PantSize,
		DressShirtSize:     m.DressShirtSize,
		ShoeSize:           m.ShoeSize,
		MaterialPreference: m.MaterialPreference,
		DateTaken:          m.DateTaken,
		UpdatedByID:        m.UpdatedByID,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
