package timers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sartorlabs/sartor-backend/internal/clients"
	pkgAuth "github.com/sartorlabs/sartor-backend/pkg/auth"
	"github.com/sartorlabs/sartor-backend/pkg/db"
	"github.com/sartorlabs/sartor-backend/pkg/db/models"
	pkgerrors "github.com/sartorlabs/sartor-backend/pkg/errors"
)

// Service defines the behavior needed by the timers controller.
type Service interface {
	Start(ctx context.Context, identity pkgAuth.Identity, req StartTimerRequest) (*TimerDTO, error)
	Stop(ctx context.Context, identity pkgAuth.Identity, req StopTimerRequest) (*TimerDTO, error)
	List(ctx context.Context, identity pkgAuth.Identity, clientID uuid.UUID) ([]TimerDTO, error)
}

type service struct {
	timers   timerRepository
	resolver accessResolver
	now      func() time.Time
}

type timerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Timer, error)
	FindOpen(ctx context.Context, clientID, tailorID uuid.UUID) (*models.Timer, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Timer, error)
	ListByClientAndTailor(ctx context.Context, clientID, tailorID uuid.UUID) ([]models.Timer, error)
	Create(ctx context.Context, timer *models.Timer) error
	Save(ctx context.Context, timer *models.Timer) error
}

type accessResolver interface {
	Resolve(ctx context.Context, identity pkgAuth.Identity, clientID uuid.UUID, capability clients.Capability) (*models.Client, error)
}

// ServiceParams bundles the dependencies required to build a timers service.
type ServiceParams struct {
	TimerRepo timerRepository
	Resolver  accessResolver
	Now       func() time.Time
}

// NewService constructs a timers service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.TimerRepo == nil {
		return nil, fmt.Errorf("timer repository is required")
	}
	if params.Resolver == nil {
		return nil, fmt.Errorf("access resolver is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		timers:   params.TimerRepo,
		resolver: params.Resolver,
		now:      now,
	}, nil
}

// Start opens a timer for the (client, tailor) pair. At most one timer per
// pair may be open; the pre-check catches the common case and the partial
// unique index closes the race between concurrent starts.
func (s *service) Start(ctx context.Context, identity pkgAuth.Identity, req StartTimerRequest) (*TimerDTO, error) {
	if _, err := s.resolver.Resolve(ctx, identity, req.ClientID, clients.CapabilityWriteAsTailor); err != nil {
		return nil, err
	}

	_, err := s.timers.FindOpen(ctx, req.ClientID, identity.UserID)
	if err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "a timer is already running for this client")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check open timer")
	}

	timer := &models.Timer{
		ClientID:    req.ClientID,
		TailorID:    identity.UserID,
		Description: req.Description,
		StartTime:   s.now(),
	}
	if err := s.timers.Create(ctx, timer); err != nil {
		if db.IsUniqueViolation(err, "uniq_timers_open") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a timer is already running for this client")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create timer")
	}
	return FromModel(timer), nil
}

// Stop closes a running timer and computes its billed duration: elapsed time
// rounded to the nearest minute, never below one.
func (s *service) Stop(ctx context.Context, identity pkgAuth.Identity, req StopTimerRequest) (*TimerDTO, error) {
	if !identity.IsTailor() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "a tailor account is required")
	}

	timer, err := s.timers.FindByID(ctx, req.TimerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "timer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load timer")
	}
	if timer.TailorID != identity.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "timer belongs to another tailor")
	}
	if !timer.Open() {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "timer is already closed")
	}

	endTime := s.now()
	if req.EndTime != nil {
		endTime = *req.EndTime
	}
	duration := billedMinutes(timer.StartTime, endTime)

	timer.EndTime = &endTime
	timer.DurationMinutes = &duration
	if err := s.timers.Save(ctx, timer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save timer")
	}
	return FromModel(timer), nil
}

// List returns the client's timers: the owning tailor sees only timers they
// logged, the linked client sees all of them.
func (s *service) List(ctx context.Context, identity pkgAuth.Identity, clientID uuid.UUID) ([]TimerDTO, error) {
	if _, err := s.resolver.Resolve(ctx, identity, clientID, clients.CapabilityRead); err != nil {
		return nil, err
	}

	var (
		rows []models.Timer
		err  error
	)
	if identity.IsTailor() {
		rows, err = s.timers.ListByClientAndTailor(ctx, clientID, identity.UserID)
	} else {
		rows, err = s.timers.ListByClient(ctx, clientID)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list timers")
	}
	return FromModels(rows), nil
}

// billedMinutes rounds the elapsed time to the nearest whole minute with a
// floor of one, so a zero-length timer still bills a minute.
func billedMinutes(start, end time.Time) int {
	elapsed := end.Sub(start)
	minutes := int((elapsed + 30*time.Second) / time.Minute)
	if minutes < 1 {
		return 1
	}
	return minutes
}
