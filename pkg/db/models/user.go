package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sartorlabs/sartor-backend/pkg/enums"
)

// User represents the canonical identity entity. Anonymous device users are
// stored as rows with no email, no credentials, and no role.
type User struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string          `gorm:"column:name;not null;default:''"`
	FirstName    string          `gorm:"column:first_name;not null;default:''"`
	LastName     string          `gorm:"column:last_name;not null;default:''"`
	Email        *string         `gorm:"column:email;uniqueIndex"`
	PasswordHash *string         `gorm:"column:password_hash"`
	Role         *enums.UserRole `gorm:"column:role;type:text"`
	IsAnonymous  bool            `gorm:"column:is_anonymous;not null;default:false"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// IdentityKind maps the stored role/anonymous flag to the tagged kind used
// everywhere above the persistence layer.
func (u *User) IdentityKind() enums.IdentityKind {
	if u == nil {
		return ""
	}
	if u.IsAnonymous {
		return enums.IdentityKindAnonymous
	}
	if u.Role != nil {
		return u.Role.Kind()
	}
	return ""
}
