package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sartorlabs/sartor-backend/pkg/enums"
)

// Identity is the principal attached to every authenticated request. The
// kind is a tagged discriminator: a tailor, a registered client, or an
// anonymous device user.
type Identity struct {
	UserID uuid.UUID
	Kind   enums.IdentityKind
}

func (i Identity) IsTailor() bool {
	return i.Kind == enums.IdentityKindTailor
}

func (i Identity) IsClient() bool {
	return i.Kind == enums.IdentityKindClient
}

func (i Identity) IsAnonymous() bool {
	return i.Kind == enums.IdentityKindAnonymous
}

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID uuid.UUID
	Kind   enums.IdentityKind
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID uuid.UUID          `json:"user_id"`
	Kind   enums.IdentityKind `json:"kind"`
	jwt.RegisteredClaims
}

// Identity converts validated claims into the request principal.
func (c *AccessTokenClaims) Identity() Identity {
	return Identity{UserID: c.UserID, Kind: c.Kind}
}
