package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sartorlabs/sartor-backend/internal/clients"
	pkgAuth "github.com/sartorlabs/sartor-backend/pkg/auth"
	"github.com/sartorlabs/sartor-backend/pkg/db/models"
	"github.com/sartorlabs/sartor-backend/pkg/enums"
	pkgerrors "github.com/sartorlabs/sartor-backend/pkg/errors"
)

func TestCreateDefaultsToScheduled(t *testing.T) {
	clientID := uuid.New()
	tailor := pkgAuth.Identity{UserID: uuid.New(), Kind: enums.IdentityKindTailor}
	svc, _ := buildAppointmentsService(t, map[uuid.UUID]uuid.UUID{clientID: tailor.UserID})

	dto, err := svc.Create(context.Background(), tailor, CreateAppointmentRequest{
		ClientID: clientID,
		Title:    "First fitting",
		Date:     time.Now().Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Status != enums.AppointmentStatusScheduled {
		t.Fatalf("expected scheduled status, got %s", dto.Status)
	}
}

func TestCreateRejectsLinkedClient(t *testing.T) {
	clientID := uuid.New()
	owner := uuid.New()
	svc, repo := buildAppointmentsService(t, map[uuid.UUID]uuid.UUID{clientID: owner})
	linkedUser := uuid.New()
	repo.linkedUsers[clientID] = linkedUser

	_, err := svc.Create(context.Background(),
		pkgAuth.Identity{UserID: linkedUser, Kind: enums.IdentityKindClient},
		CreateAppointmentRequest{ClientID: clientID, Title: "Fitting", Date: time.Now()})
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestUpdateResolvesThroughAppointmentClient(t *testing.T) {
	clientID := uuid.New()
	tailor := pkgAuth.Identity{UserID: uuid.New(), Kind: enums.IdentityKindTailor}
	otherTailor := pkgAuth.Identity{UserID: uuid.New(), Kind: enums.IdentityKindTailor}
	svc, repo := buildAppointmentsService(t, map[uuid.UUID]uuid.UUID{clientID: tailor.UserID})

	seeded := &models.Appointment{
		ID:       uuid.New(),
		ClientID: clientID,
		Title:    "Fitting",
		Date:     time.Now().Add(24 * time.Hour),
		Status:   enums.AppointmentStatusScheduled,
	}
	repo.seed(seeded)

	status := "completed"
	dto, err := svc.Update(context.Background(), tailor, seeded.ID, UpdateAppointmentRequest{Status: &status})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.Status != enums.AppointmentStatusCompleted {
		t.Fatalf("expected completed status, got %s", dto.Status)
	}

	_, err = svc.Update(context.Background(), otherTailor, seeded.ID, UpdateAppointmentRequest{Status: &status})
	assertCode(t, err, pkgerrors.CodeNotFound)

	_, err = svc.Update(context.Background(), tailor, uuid.New(), UpdateAppointmentRequest{Status: &status})
	assertCode(t, err, pkgerrors.CodeNotFound)

	_, err = svc.Update(context.Background(), tailor, seeded.ID, UpdateAppointmentRequest{})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestListOrdersByAscendingDate(t *testing.T) {
	clientID := uuid.New()
	tailor := pkgAuth.Identity{UserID: uuid.New(), Kind: enums.IdentityKindTailor}
	svc, repo := buildAppointmentsService(t, map[uuid.UUID]uuid.UUID{clientID: tailor.UserID})

	later := &models.Appointment{ID: uuid.New(), ClientID: clientID, Title: "Later", Date: time.Now().Add(72 * time.Hour)}
	sooner := &models.Appointment{ID: uuid.New(), ClientID: clientID, Title: "Sooner", Date: time.Now().Add(24 * time.Hour)}
	repo.seed(later)
	repo.seed(sooner)

	rows, err := svc.List(context.Background(), tailor, clientID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(rows))
	}
	if rows[0].ID != sooner.ID {
		t.Fatalf("expected soonest appointment first")
	}
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s", code)
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != code {
		t.Fatalf("expected %s error, got %v", code, err)
	}
}

func buildAppointmentsService(t *testing.T, owners map[uuid.UUID]uuid.UUID) (Service, *memAppointmentRepo) {
	t.Helper()
	repo := &memAppointmentRepo{byID: map[uuid.UUID]*models.Appointment{}, linkedUsers: map[uuid.UUID]uuid.UUID{}}
	svc, err := NewService(ServiceParams{
		AppointmentRepo: repo,
		Resolver:        ownerResolver{owners: owners, linkedUsers: repo.linkedUsers},
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, repo
}

type ownerResolver struct {
	owners      map[uuid.UUID]uuid.UUID
	linkedUsers map[uuid.UUID]uuid.UUID
}

func (o ownerResolver) Resolve(ctx context.Context, identity pkgAuth.Identity, clientID uuid.UUID, capability clients.Capability) (*models.Client, error) {
	if capability == clients.CapabilityWriteAsTailor && !identity.IsTailor() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "a tailor account is required")
	}
	owner, ok := o.owners[clientID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
	}
	if identity.IsTailor() && identity.UserID == owner {
		return &models.Client{ID: clientID, TailorID: &owner}, nil
	}
	if capability == clients.CapabilityRead && identity.IsClient() && o.linkedUsers[clientID] == identity.UserID {
		return &models.Client{ID: clientID, TailorID: &owner}, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
}

type memAppointmentRepo struct {
	byID        map[uuid.UUID]*models.Appointment
	linkedUsers map[uuid.UUID]uuid.UUID
}

func (m *memAppointmentRepo) seed(appointment *models.Appointment) {
	m.byID[appointment.ID] = appointment
}

func (m *memAppointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	appointment, ok := m.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return appointment, nil
}

func (m *memAppointmentRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Appointment, error) {
	var rows []models.Appointment
	for _, appointment := range m.byID {
		if appointment.ClientID == clientID {
			rows = append(rows, *appointment)
		}
	}
	for i := 0; i < len(rows); i++ {
		for j := i + 1; j < len(rows); j++ {
			if rows[j].Date.Before(rows[i].Date) {
				rows[i], rows[j] = rows[j], rows[i]
			}
		}
	}
	return rows, nil
}

func (m *memAppointmentRepo) Create(ctx context.Context, appointment *models.Appointment) error {
	appointment.ID = uuid.New()
	m.byID[appointment.ID] = appointment
	return nil
}

func (m *memAppointmentRepo) Save(ctx context.Context, appointment *models.Appointment) error {
	m.byID[appointment.ID] = appointment
	return nil
}
