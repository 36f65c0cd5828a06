package measurements

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sartorlabs/sartor-backend/internal/clients"
	pkgAuth "github.com/sartorlabs/sartor-backend/pkg/auth"
	"github.com/sartorlabs/sartor-backend/pkg/db"
	"github.com/sartorlabs/sartor-backend/pkg/db/models"
	pkgerrors "github.com/sartorlabs/sartor-backend/pkg/errors"
)

// Service defines the behavior needed by the measurements controller.
type Service interface {
	Upsert(ctx context.Context, identity pkgAuth.Identity, req UpsertMeasurementRequest) (*MeasurementDTO, error)
	GetSelf(ctx context.Context, identity pkgAuth.Identity) (*MeasurementDTO, error)
	GetForClient(ctx context.Context, identity pkgAuth.Identity, clientID uuid.UUID) (*MeasurementDTO, error)
}

type service struct {
	measurements measurementRepository
	resolver     accessResolver
}

type measurementRepository interface {
	FindByClientID(ctx context.Context, clientID uuid.UUID) (*models.Measurement, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Measurement, error)
	UpsertByClientID(ctx context.Context, insert *models.Measurement, assignments map[string]any) (*models.Measurement, error)
	Create(ctx context.Context, row *models.Measurement) error
	Save(ctx context.Context, row *models.Measurement) error
}

type accessResolver interface {
	Resolve(ctx context.Context, identity pkgAuth.Identity, clientID uuid.UUID, capability clients.Capability) (*models.Client, error)
}

// ServiceParams bundles the dependencies required to build a measurements
// service.
type ServiceParams struct {
	MeasurementRepo measurementRepository
	Resolver        accessResolver
}

// NewService constructs a measurements service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.MeasurementRepo == nil {
		return nil, fmt.Errorf("measurement repository is required")
	}
	if params.Resolver == nil {
		return nil, fmt.Errorf("access resolver is required")
	}
	return &service{
		measurements: params.MeasurementRepo,
		resolver:     params.Resolver,
	}, nil
}

// Upsert routes the write to the self-scoped path (anonymous identity or an
// explicit user_id) or the relationship-scoped path (client_id), then merges
// the provided fields into the single stored row for that scope.
func (s *service) Upsert(ctx context.Context, identity pkgAuth.Identity, req UpsertMeasurementRequest) (*MeasurementDTO, error) {
	switch {
	case identity.IsAnonymous() || req.UserID != nil:
		return s.upsertSelf(ctx, identity, req)
	case req.ClientID != nil:
		return s.upsertForClient(ctx, identity, *req.ClientID, req)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "either client_id or user_id must be provided")
	}
}

func (s *service) upsertSelf(ctx context.Context, identity pkgAuth.Identity, req UpsertMeasurementRequest) (*MeasurementDTO, error) {
	if req.UserID != nil && *req.UserID != identity.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cannot write another user's measurements")
	}
	userID := identity.UserID

	existing, err := s.measurements.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load measurement")
	}

	if existing == nil {
		row := &models.Measurement{UserID: &userID}
		applyFields(row, identity, req)
		if err := s.measurements.Create(ctx, row); err != nil {
			if db.IsUniqueViolation(err, "") {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "measurement already exists")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create measurement")
		}
		return FromModel(row), nil
	}

	applyFields(existing, identity, req)
	if err := s.measurements.Save(ctx, existing); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save measurement")
	}
	return FromModel(existing), nil
}

func (s *service) upsertForClient(ctx context.Context, identity pkgAuth.Identity, clientID uuid.UUID, req UpsertMeasurementRequest) (*MeasurementDTO, error) {
	if _, err := s.resolver.Resolve(ctx, identity, clientID, clients.CapabilityRead); err != nil {
		return nil, err
	}

	insert := &models.Measurement{ClientID: &clientID}
	applyFields(insert, identity, req)

	row, err := s.measurements.UpsertByClientID(ctx, insert, assignments(identity, req))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "upsert measurement")
	}
	return FromModel(row), nil
}

func (s *service) GetSelf(ctx context.Context, identity pkgAuth.Identity) (*MeasurementDTO, error) {
	row, err := s.measurements.FindByUserID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "measurement not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load measurement")
	}
	return FromModel(row), nil
}

func (s *service) GetForClient(ctx context.Context, identity pkgAuth.Identity, clientID uuid.UUID) (*MeasurementDTO, error) {
	if _, err := s.resolver.Resolve(ctx, identity, clientID, clients.CapabilityRead); err != nil {
		return nil, err
	}
	row, err := s.measurements.FindByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "measurement not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load measurement")
	}
	return FromModel(row), nil
}

// applyFields merges only the provided request fields onto the row and stamps
// the writer.
func applyFields(row *models.Measurement, identity pkgAuth.Identity, req UpsertMeasurementRequest) {
	if req.Chest != nil {
		row.Chest = req.Chest
	}
	if req.Overarm != nil {
		row.Overarm = req.Overarm
	}
	if req.Waist != nil {
		row.Waist = req.Waist
	}
	if req.HipSeat != nil {
		row.HipSeat = req.HipSeat
	}
	if req.Neck != nil {
		row.Neck = req.Neck
	}
	if req.Arm != nil {
		row.Arm = req.Arm
	}
	if req.PantOutseam != nil {
		row.PantOutseam = req.PantOutseam
	}
	if req.PantInseam != nil {
		row.PantInseam = req.PantInseam
	}
	if req.CoatInseam != nil {
		row.CoatInseam = req.CoatInseam
	}
	if req.Height != nil {
		row.Height = req.Height
	}
	if req.Weight != nil {
		row.Weight = req.Weight
	}
	if req.CoatSize != nil {
		row.CoatSize = req.CoatSize
	}
	if req.PantSize != nil {
		row.PantSize = req.PantSize
	}
	if req.DressShirtSize != nil {
		row.DressShirtSize = req.DressShirtSize
	}
	if req.ShoeSize != nil {
		row.ShoeSize = req.ShoeSize
	}
	if req.MaterialPreference != nil {
		row.MaterialPreference = req.MaterialPreference
	}
	if req.DateTaken != nil {
		row.DateTaken = *req.DateTaken
	}
	writer := identity.UserID
	row.UpdatedByID = &writer
}

// assignments builds the column set applied when the atomic upsert hits an
// existing row. Only provided fields appear, so the store-side merge matches
// applyFields.
func assignments(identity pkgAuth.Identity, req UpsertMeasurementRequest) map[string]any {
	out := map[string]any{
		"updated_by_id": identity.UserID,
	}
	setF := func(column string, value *float64) {
		if value != nil {
			out[column] = *value
		}
	}
	setS := func(column string, value *string) {
		if value != nil {
			out[column] = *value
		}
	}
	setF("chest", req.Chest)
	setF("overarm", req.Overarm)
	setF("waist", req.Waist)
	setF("hip_seat", req.HipSeat)
	setF("neck", req.Neck)
	setF("arm", req.Arm)
	setF("pant_outseam", req.PantOutseam)
	setF("pant_inseam", req.PantInseam)
	setF("coat_inseam", req.CoatInseam)
	setF("height", req.Height)
	setF("weight", req.Weight)
	setS("coat_size", req.CoatSize)
	setS("pant_size", req.PantSize)
	setS("dress_shirt_size", req.DressShirtSize)
	setS("shoe_size", req.ShoeSize)
	setS("material_preference", req.MaterialPreference)
	if req.DateTaken != nil {
		out["date_taken"] = *req.DateTaken
	}
	return out
}
