package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sartorlabs/sartor-backend/internal/users"
	pkgAuth "github.com/sartorlabs/sartor-backend/pkg/auth"
	"github.com/sartorlabs/sartor-backend/pkg/config"
	"github.com/sartorlabs/sartor-backend/pkg/db"
	"github.com/sartorlabs/sartor-backend/pkg/db/models"
	"github.com/sartorlabs/sartor-backend/pkg/enums"
	pkgerrors "github.com/sartorlabs/sartor-backend/pkg/errors"
	"github.com/sartorlabs/sartor-backend/pkg/security"
)

const (
	tempPasswordRandomLength = 10
	tempPasswordTotalLength  = 12
)

// Service defines the behavior needed by the clients controller.
type Service interface {
	List(ctx context.Context, identity pkgAuth.Identity) ([]ClientDTO, error)
	Provision(ctx context.Context, identity pkgAuth.Identity, req ProvisionClientRequest) (*ProvisionClientResponse, error)
	Get(ctx context.Context, identity pkgAuth.Identity, clientID uuid.UUID) (*ClientDTO, error)
	Update(ctx context.Context, identity pkgAuth.Identity, clientID uuid.UUID, req UpdateClientRequest) (*ClientDTO, error)
}

type service struct {
	clients     clientRepository
	users       userRepository
	resolver    accessResolver
	passwordCfg config.PasswordConfig
}

type clientRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	FindDetailed(ctx context.Context, id uuid.UUID) (*models.Client, error)
	FindByClientUserID(ctx context.Context, userID uuid.UUID) (*models.Client, error)
	ListByTailor(ctx context.Context, tailorID uuid.UUID) ([]models.Client, error)
	Create(ctx context.Context, client *models.Client) error
	Save(ctx context.Context, client *models.Client) error
}

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
}

type accessResolver interface {
	Resolve(ctx context.Context, identity pkgAuth.Identity, clientID uuid.UUID, capability Capability) (*models.Client, error)
}

// ServiceParams bundles the dependencies required to build a clients service.
type ServiceParams struct {
	ClientRepo     clientRepository
	UserRepo       userRepository
	Resolver       accessResolver
	PasswordConfig config.PasswordConfig
}

// NewService constructs a clients service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ClientRepo == nil {
		return nil, fmt.Errorf("client repository is required")
	}
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.Resolver == nil {
		return nil, fmt.Errorf("access resolver is required")
	}
	return &service{
		clients:     params.ClientRepo,
		users:       params.UserRepo,
		resolver:    params.Resolver,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *service) List(ctx context.Context, identity pkgAuth.Identity) ([]ClientDTO, error) {
	switch {
	case identity.IsTailor():
		rows, err := s.clients.ListByTailor(ctx, identity.UserID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list clients")
		}
		return FromModels(rows), nil

	case identity.IsClient():
		client, err := s.clients.FindByClientUserID(ctx, identity.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []ClientDTO{}, nil
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load own profile")
		}
		detailed, err := s.loadDetailed(ctx, client.ID)
		if err != nil {
			return nil, err
		}
		return []ClientDTO{*detailed}, nil

	default:
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "a registered account is required")
	}
}

// Provision creates or links a client relationship for the requesting tailor.
// A brand-new email gets a client account with either the supplied password or
// a generated temporary one. An existing unassigned profile is claimed; a
// profile owned by a different tailor conflicts.
func (s *service) Provision(ctx context.Context, identity pkgAuth.Identity, req ProvisionClientRequest) (*ProvisionClientResponse, error) {
	if !identity.IsTailor() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "a tailor account is required")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
		}
		return s.provisionNewAccount(ctx, identity, email, req)
	}

	if user.Role == nil || *user.Role != enums.UserRoleClient {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email belongs to a non-client user")
	}

	client, err := s.clients.FindByClientUserID(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup client profile")
		}
		client = &models.Client{ClientUserID: &user.ID}
		s.applyProvisionFields(client, identity.UserID, req)
		if err := s.clients.Create(ctx, client); err != nil {
			if db.IsUniqueViolation(err, "") {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "client profile already exists")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create client")
		}
		return s.respondDetailed(ctx, client.ID, nil)
	}

	if client.TailorID != nil && *client.TailorID != identity.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "client is already assigned to another tailor")
	}

	s.applyProvisionFields(client, identity.UserID, req)
	if err := s.clients.Save(ctx, client); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "claim client")
	}
	return s.respondDetailed(ctx, client.ID, nil)
}

func (s *service) provisionNewAccount(ctx context.Context, identity pkgAuth.Identity, email string, req ProvisionClientRequest) (*ProvisionClientResponse, error) {
	password := ""
	var tempPassword *string
	if req.Password != nil {
		password = *req.Password
	} else {
		generated, err := security.GenerateTempPasswordPadded(tempPasswordRandomLength, tempPasswordTotalLength)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate temp password")
		}
		password = generated
		tempPassword = &generated
	}

	hash, err := security.HashPassword(password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	role := enums.UserRoleClient
	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Name:         strings.TrimSpace(req.Name),
		Email:        &email,
		PasswordHash: &hash,
		Role:         &role,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create client account")
	}

	client := &models.Client{ClientUserID: &user.ID}
	s.applyProvisionFields(client, identity.UserID, req)
	if err := s.clients.Create(ctx, client); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "client profile already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create client")
	}

	return s.respondDetailed(ctx, client.ID, tempPassword)
}

// applyProvisionFields reassigns ownership and replaces storeName/notes
// wholesale. Omitted fields are nulled rather than preserved, so each
// provisioning call fully describes the relationship.
func (s *service) applyProvisionFields(client *models.Client, tailorID uuid.UUID, req ProvisionClientRequest) {
	client.TailorID = &tailorID
	client.StoreName = req.StoreName
	client.Notes = req.Notes
}

func (s *service) Get(ctx context.Context, identity pkgAuth.Identity, clientID uuid.UUID) (*ClientDTO, error) {
	client, err := s.resolver.Resolve(ctx, identity, clientID, CapabilityRead)
	if err != nil {
		return nil, err
	}
	return s.loadDetailed(ctx, client.ID)
}

func (s *service) Update(ctx context.Context, identity pkgAuth.Identity, clientID uuid.UUID, req UpdateClientRequest) (*ClientDTO, error) {
	client, err := s.resolver.Resolve(ctx, identity, clientID, CapabilityRead)
	if err != nil {
		return nil, err
	}

	if req.StoreName != nil {
		client.StoreName = req.StoreName
	}
	if req.Notes != nil {
		client.Notes = req.Notes
	}

	if err := s.clients.Save(ctx, client); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save client")
	}
	return s.loadDetailed(ctx, client.ID)
}

func (s *service) loadDetailed(ctx context.Context, clientID uuid.UUID) (*ClientDTO, error) {
	detailed, err := s.clients.FindDetailed(ctx, clientID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load client")
	}
	return FromModel(detailed), nil
}

func (s *service) respondDetailed(ctx context.Context, clientID uuid.UUID, tempPassword *string) (*ProvisionClientResponse, error) {
	dto, err := s.loadDetailed(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return &ProvisionClientResponse{
		Client:            dto,
		TemporaryPassword: tempPassword,
	}, nil
}
