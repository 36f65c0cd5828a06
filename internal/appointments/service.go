package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sartorlabs/sartor-backend/internal/clients"
	pkgAuth "github.com/sartorlabs/sartor-backend/pkg/auth"
	"github.com/sartorlabs/sartor-backend/pkg/db/models"
	"github.com/sartorlabs/sartor-backend/pkg/enums"
	pkgerrors "github.com/sartorlabs/sartor-backend/pkg/errors"
)

// Service defines the behavior needed by the appointments controller.
type Service interface {
	Create(ctx context.Context, identity pkgAuth.Identity, req CreateAppointmentRequest) (*AppointmentDTO, error)
	Update(ctx context.Context, identity pkgAuth.Identity, appointmentID uuid.UUID, req UpdateAppointmentRequest) (*AppointmentDTO, error)
	List(ctx context.Context, identity pkgAuth.Identity, clientID uuid.UUID) ([]AppointmentDTO, error)
}

type service struct {
	appointments appointmentRepository
	resolver     accessResolver
}

type appointmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Appointment, error)
	Create(ctx context.Context, appointment *models.Appointment) error
	Save(ctx context.Context, appointment *models.Appointment) error
}

type accessResolver interface {
	Resolve(ctx context.Context, identity pkgAuth.Identity, clientID uuid.UUID, capability clients.Capability) (*models.Client, error)
}

// ServiceParams bundles the dependencies required to build an appointments
// service.
type ServiceParams struct {
	AppointmentRepo appointmentRepository
	Resolver        accessResolver
}

// NewService constructs an appointments service with the provided
// dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.AppointmentRepo == nil {
		return nil, fmt.Errorf("appointment repository is required")
	}
	if params.Resolver == nil {
		return nil, fmt.Errorf("access resolver is required")
	}
	return &service{
		appointments: params.AppointmentRepo,
		resolver:     params.Resolver,
	}, nil
}

func (s *service) Create(ctx context.Context, identity pkgAuth.Identity, req CreateAppointmentRequest) (*AppointmentDTO, error) {
	if _, err := s.resolver.Resolve(ctx, identity, req.ClientID, clients.CapabilityWriteAsTailor); err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		ClientID: req.ClientID,
		Title:    req.Title,
		Date:     req.Date,
		Location: req.Location,
		Notes:    req.Notes,
		Status:   enums.AppointmentStatusScheduled,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create appointment")
	}
	return FromModel(appointment), nil
}

// Update edits an appointment. Ownership is resolved through the
// appointment's own client, not any caller-supplied value.
func (s *service) Update(ctx context.Context, identity pkgAuth.Identity, appointmentID uuid.UUID, req UpdateAppointmentRequest) (*AppointmentDTO, error) {
	if req.Empty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one field must be provided")
	}

	appointment, err := s.appointments.FindByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "appointment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load appointment")
	}

	if _, err := s.resolver.Resolve(ctx, identity, appointment.ClientID, clients.CapabilityWriteAsTailor); err != nil {
		return nil, err
	}

	if req.Title != nil {
		appointment.Title = *req.Title
	}
	if req.Date != nil {
		appointment.Date = *req.Date
	}
	if req.Location != nil {
		appointment.Location = req.Location
	}
	if req.Notes != nil {
		appointment.Notes = req.Notes
	}
	if req.Status != nil {
		status, err := enums.ParseAppointmentStatus(*req.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
		}
		appointment.Status = status
	}

	if err := s.appointments.Save(ctx, appointment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save appointment")
	}
	return FromModel(appointment), nil
}

func (s *service) List(ctx context.Context, identity pkgAuth.Identity, clientID uuid.UUID) ([]AppointmentDTO, error) {
	if _, err := s.resolver.Resolve(ctx, identity, clientID, clients.CapabilityRead); err != nil {
		return nil, err
	}
	rows, err := s.appointments.ListByClient(ctx, clientID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list appointments")
	}
	return FromModels(rows), nil
}
