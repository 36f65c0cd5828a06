package auth

import (
	"github.com/sartorlabs/sartor-backend/internal/users"
)

// RegisterRequest carries a new account registration.
type RegisterRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	FirstName string `json:"first_name" validate:"omitempty,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
	Role      string `json:"role" validate:"required,oneof=tailor client"`
}

// LoginRequest carries credential login input.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest carries a partial profile update. Nil fields are left
// untouched.
type UpdateProfileRequest struct {
	Name      *string `json:"name" validate:"omitempty,max=200"`
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=8,max=128"`
}

// AuthResponse is returned by register, login and anonymous-identity creation.
type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	User        *users.UserDTO `json:"user"`
}
