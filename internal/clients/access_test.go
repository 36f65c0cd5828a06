package clients

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/sartorlabs/sartor-backend/pkg/auth"
	"github.com/sartorlabs/sartor-backend/pkg/db/models"
	"github.com/sartorlabs/sartor-backend/pkg/enums"
	pkgerrors "github.com/sartorlabs/sartor-backend/pkg/errors"
)

type stubClientFinder struct {
	clients map[uuid.UUID]*models.Client
}

func (s stubClientFinder) FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	client, ok := s.clients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return client, nil
}

func TestResolverCapabilities(t *testing.T) {
	ownerID := uuid.New()
	otherTailorID := uuid.New()
	linkedUserID := uuid.New()
	strangerUserID := uuid.New()
	clientID := uuid.New()
	missingID := uuid.New()

	resolver, err := NewResolver(stubClientFinder{clients: map[uuid.UUID]*models.Client{
		clientID: {ID: clientID, TailorID: &ownerID, ClientUserID: &linkedUserID},
	}})
	if err != nil {
		t.Fatalf("build resolver: %v", err)
	}

	tests := []struct {
		name       string
		identity   pkgAuth.Identity
		clientID   uuid.UUID
		capability Capability
		wantCode   pkgerrors.Code
	}{
		{
			name:       "anonymous cannot read",
			identity:   pkgAuth.Identity{UserID: uuid.New(), Kind: enums.IdentityKindAnonymous},
			clientID:   clientID,
			capability: CapabilityRead,
			wantCode:   pkgerrors.CodeUnauthorized,
		},
		{
			name:       "owning tailor reads",
			identity:   pkgAuth.Identity{UserID: ownerID, Kind: enums.IdentityKindTailor},
			clientID:   clientID,
			capability: CapabilityRead,
		},
		{
			name:       "other tailor sees not found",
			identity:   pkgAuth.Identity{UserID: otherTailorID, Kind: enums.IdentityKindTailor},
			clientID:   clientID,
			capability: CapabilityRead,
			wantCode:   pkgerrors.CodeNotFound,
		},
		{
			name:       "linked client reads",
			identity:   pkgAuth.Identity{UserID: linkedUserID, Kind: enums.IdentityKindClient},
			clientID:   clientID,
			capability: CapabilityRead,
		},
		{
			name:       "unlinked client sees not found",
			identity:   pkgAuth.Identity{UserID: strangerUserID, Kind: enums.IdentityKindClient},
			clientID:   clientID,
			capability: CapabilityRead,
			wantCode:   pkgerrors.CodeNotFound,
		},
		{
			name:       "owning tailor writes",
			identity:   pkgAuth.Identity{UserID: ownerID, Kind: enums.IdentityKindTailor},
			clientID:   clientID,
			capability: CapabilityWriteAsTailor,
		},
		{
			name:       "other tailor write sees not found",
			identity:   pkgAuth.Identity{UserID: otherTailorID, Kind: enums.IdentityKindTailor},
			clientID:   clientID,
			capability: CapabilityWriteAsTailor,
			wantCode:   pkgerrors.CodeNotFound,
		},
		{
			name:       "linked client cannot write as tailor",
			identity:   pkgAuth.Identity{UserID: linkedUserID, Kind: enums.IdentityKindClient},
			clientID:   clientID,
			capability: CapabilityWriteAsTailor,
			wantCode:   pkgerrors.CodeForbidden,
		},
		{
			name:       "missing record is not found",
			identity:   pkgAuth.Identity{UserID: ownerID, Kind: enums.IdentityKindTailor},
			clientID:   missingID,
			capability: CapabilityRead,
			wantCode:   pkgerrors.CodeNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client, err := resolver.Resolve(context.Background(), tc.identity, tc.clientID, tc.capability)
			if tc.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if client == nil || client.ID != tc.clientID {
					t.Fatalf("expected resolved client %s", tc.clientID)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected %s error", tc.wantCode)
			}
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != tc.wantCode {
				t.Fatalf("expected %s error, got %v", tc.wantCode, err)
			}
		})
	}
}
