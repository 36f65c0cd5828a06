package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/sartorlabs/sartor-backend/pkg/db/models"
	"github.com/sartorlabs/sartor-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	FirstName   string             `json:"first_name"`
	LastName    string             `json:"last_name"`
	Email       *string            `json:"email,omitempty"`
	Role        *enums.UserRole    `json:"role,omitempty"`
	Kind        enums.IdentityKind `json:"kind"`
	IsAnonymous bool               `json:"is_anonymous"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Name         string
	FirstName    string
	LastName     string
	Email        *string
	PasswordHash *string
	Role         *enums.UserRole
	IsAnonymous  bool
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:          u.ID,
		Name:        u.Name,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Role:        u.Role,
		Kind:        u.IdentityKind(),
		IsAnonymous: u.IsAnonymous,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Name:         c.Name,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Role:         c.Role,
		IsAnonymous:  c.IsAnonymous,
	}
}
