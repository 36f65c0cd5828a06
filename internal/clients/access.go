package clients

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/sartorlabs/sartor-backend/pkg/auth"
	"github.com/sartorlabs/sartor-backend/pkg/db/models"
	pkgerrors "github.com/sartorlabs/sartor-backend/pkg/errors"
)

// Capability names the level of access a caller needs over a client record.
type Capability string

const (
	// CapabilityRead allows reading and editing the shared profile fields.
	// Granted to the owning tailor and to the linked client account.
	CapabilityRead Capability = "read"
	// CapabilityWriteAsTailor gates tailor-only mutations such as
	// appointments and timers. Granted to the owning tailor only.
	CapabilityWriteAsTailor Capability = "write-as-tailor"
)

const clientNotFoundMessage = "client not found"

type clientFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
}

// Resolver decides whether an identity may touch a client record. Missing
// records and records owned by someone else both surface as not-found, so a
// caller can never probe another tailor's book.
type Resolver struct {
	clients clientFinder
}

// NewResolver constructs an ownership resolver over the provided store.
func NewResolver(clients clientFinder) (*Resolver, error) {
	if clients == nil {
		return nil, fmt.Errorf("client store is required")
	}
	return &Resolver{clients: clients}, nil
}

// Resolve loads the client record and checks the identity's capability over
// it. It has no side effects.
func (r *Resolver) Resolve(ctx context.Context, identity pkgAuth.Identity, clientID uuid.UUID, capability Capability) (*models.Client, error) {
	if identity.IsAnonymous() || (!identity.IsTailor() && !identity.IsClient()) {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "a registered account is required")
	}
	if capability == CapabilityWriteAsTailor && !identity.IsTailor() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "a tailor account is required")
	}

	client, err := r.clients.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, clientNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load client")
	}

	switch capability {
	case CapabilityRead:
		if identity.IsTailor() && client.OwnedByTailor(identity.UserID) {
			return client, nil
		}
		if identity.IsClient() && client.LinkedToUser(identity.UserID) {
			return client, nil
		}
	case CapabilityWriteAsTailor:
		if client.OwnedByTailor(identity.UserID) {
			return client, nil
		}
	default:
		return nil, pkgerrors.New(pkgerrors.CodeInternal, fmt.Sprintf("unknown capability %q", capability))
	}

	return nil, pkgerrors.New(pkgerrors.CodeNotFound, clientNotFoundMessage)
}
