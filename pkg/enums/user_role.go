package enums

import "fmt"

// UserRole describes the registered account roles stored on a user row.
// Anonymous users carry no role at all.
type UserRole string

const (
	UserRoleTailor UserRole = "tailor"
	UserRoleClient UserRole = "client"
)

var validUserRoles = []UserRole{
	UserRoleTailor,
	UserRoleClient,
}

// IsValid reports whether the value matches the canonical user role enum.
func (r UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseUserRole converts the raw string to UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}

// Kind maps the stored role to the request-time identity kind.
func (r UserRole) Kind() IdentityKind {
	switch r {
	case UserRoleTailor:
		return IdentityKindTailor
	case UserRoleClient:
		return IdentityKindClient
	default:
		return ""
	}
}
