package enums

import "fmt"

// IdentityKind is the single discriminator for the acting principal. It folds
// the registered roles and the anonymous device identity into one tagged
// value, so "no role but not anonymous" cannot be represented.
type IdentityKind string

const (
	IdentityKindTailor    IdentityKind = "tailor"
	IdentityKindClient    IdentityKind = "client"
	IdentityKindAnonymous IdentityKind = "anonymous"
)

var validIdentityKinds = []IdentityKind{
	IdentityKindTailor,
	IdentityKindClient,
	IdentityKindAnonymous,
}

// IsValid reports whether the value matches the canonical identity kind enum.
func (k IdentityKind) IsValid() bool {
	for _, candidate := range validIdentityKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseIdentityKind converts the raw string to IdentityKind.
func ParseIdentityKind(value string) (IdentityKind, error) {
	for _, candidate := range validIdentityKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid identity kind %q", value)
}
